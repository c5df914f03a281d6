package display

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// "HDMI-1 connected primary 2560x1440+0+0 (normal left ...) 597mm x 336mm"
	xrandrOutput = regexp.MustCompile(`^\S+ connected (primary )?(\d+)x(\d+)\+\d+\+\d+`)

	// "          Resolution: 2560 x 1440 (QHD/WQHD - Wide Quad High Definition)"
	profilerResolution = regexp.MustCompile(`Resolution:\s*(\d+)\s*x\s*(\d+)`)
)

// ParseXrandr extracts the primary output's current mode from the output of
// `xrandr --current`. Without a primary output the first connected and
// active output is used.
func ParseXrandr(out string) (Size, error) {
	var first *Size
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		m := xrandrOutput.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		s, err := size(m[2], m[3])
		if err != nil {
			return Size{}, err
		}
		if m[1] != "" {
			return s, nil
		}
		if first == nil {
			first = &s
		}
	}
	if first == nil {
		return Size{}, fmt.Errorf("xrandr: no active output")
	}
	return *first, nil
}

// ParseSystemProfiler extracts the first display resolution from the
// output of `system_profiler SPDisplaysDataType`. The main display is
// listed first.
func ParseSystemProfiler(out string) (Size, error) {
	m := profilerResolution.FindStringSubmatch(out)
	if m == nil {
		return Size{}, fmt.Errorf("system_profiler: no display resolution")
	}
	return size(m[1], m[2])
}

func size(w, h string) (Size, error) {
	width, err := strconv.Atoi(w)
	if err != nil {
		return Size{}, err
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return Size{}, err
	}
	return Size{Width: width, Height: height}, nil
}
