//go:build !windows

package sink

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// System returns the wallpaper setter for the current desktop: osascript
// on macOS and gsettings (GNOME and derivatives) elsewhere.
func System() Setter {
	if runtime.GOOS == "darwin" {
		return SetterFunc(setMacOS)
	}
	return SetterFunc(setGNOME)
}

func setGNOME(ctx context.Context, path string) error {
	uri := (&url.URL{Scheme: "file", Path: path}).String()
	for _, key := range []string{"picture-uri", "picture-uri-dark"} {
		cmd := exec.CommandContext(ctx, "gsettings", "set", "org.gnome.desktop.background", key, uri)
		if out, err := cmd.CombinedOutput(); err != nil {
			// picture-uri-dark only exists on GNOME 42 and later.
			if key == "picture-uri-dark" {
				continue
			}
			return fmt.Errorf("gsettings %s: %w: %s", key, err, strings.TrimSpace(string(out)))
		}
	}
	return nil
}

func setMacOS(ctx context.Context, path string) error {
	script := fmt.Sprintf(`tell application "System Events" to tell every desktop to set picture to %q`, path)
	if out, err := exec.CommandContext(ctx, "osascript", "-e", script).CombinedOutput(); err != nil {
		return fmt.Errorf("osascript: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
