//go:build !windows

package display

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// System returns the provider for the current operating system.
func System() Provider {
	if runtime.GOOS == "darwin" {
		return command{name: "system_profiler", args: []string{"SPDisplaysDataType"}, parse: ParseSystemProfiler}
	}
	return command{name: "xrandr", args: []string{"--current"}, parse: ParseXrandr}
}

// command runs a tool and parses its output.
type command struct {
	name  string
	args  []string
	parse func(string) (Size, error)
}

func (c command) Primary(ctx context.Context) (Size, error) {
	out, err := exec.CommandContext(ctx, c.name, c.args...).Output()
	if err != nil {
		return Size{}, fmt.Errorf("%s: %w", c.name, err)
	}
	return c.parse(string(out))
}
