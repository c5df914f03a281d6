//go:build windows

package display

import (
	"context"
	"fmt"

	"golang.org/x/sys/windows"
)

const (
	smCXScreen = 0
	smCYScreen = 1
)

var procGetSystemMetrics = windows.NewLazySystemDLL("user32.dll").NewProc("GetSystemMetrics")

// System returns the provider for the current operating system.
func System() Provider {
	return ProviderFunc(primaryMetrics)
}

func primaryMetrics(ctx context.Context) (Size, error) {
	if err := procGetSystemMetrics.Find(); err != nil {
		return Size{}, err
	}
	w, _, _ := procGetSystemMetrics.Call(smCXScreen)
	h, _, _ := procGetSystemMetrics.Call(smCYScreen)
	if w == 0 || h == 0 {
		return Size{}, fmt.Errorf("GetSystemMetrics returned %dx%d", w, h)
	}
	return Size{Width: int(w), Height: int(h)}, nil
}
