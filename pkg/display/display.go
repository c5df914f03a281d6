// Package display determines the size of the wallpaper canvas.
//
// The size is resolved in order from an explicit override, the primary
// display as reported by the operating system, and finally a configured
// fallback. [Resolve] reports which of these was used so the CLI can
// explain surprising output sizes.
package display

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// Size is a display resolution in pixels.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.Width > 0 && s.Height > 0 }

// Origin says where a resolved size came from.
type Origin string

// Resolution origins.
const (
	OriginOverride Origin = "override"
	OriginDetected Origin = "detected"
	OriginFallback Origin = "fallback"
)

// Provider reports the size of the primary display.
type Provider interface {
	Primary(ctx context.Context) (Size, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) (Size, error)

// Primary calls f(ctx).
func (f ProviderFunc) Primary(ctx context.Context) (Size, error) { return f(ctx) }

// Resolved is the outcome of Resolve.
type Resolved struct {
	Size   Size
	Origin Origin

	// Err holds the detection error when the fallback was used.
	Err error
}

// Resolve returns override when valid, otherwise the size reported by p,
// otherwise fallback. A nil provider skips detection.
func Resolve(ctx context.Context, override, fallback Size, p Provider, logger *log.Logger) Resolved {
	if override.Valid() {
		return Resolved{Size: override, Origin: OriginOverride}
	}
	var err error
	if p != nil {
		var s Size
		s, err = p.Primary(ctx)
		if err == nil && s.Valid() {
			return Resolved{Size: s, Origin: OriginDetected}
		}
		if err == nil {
			err = fmt.Errorf("provider reported %s", s)
		}
		if logger != nil {
			logger.Warn("display detection failed, using fallback", "fallback", fallback, "err", err)
		}
	}
	return Resolved{Size: fallback, Origin: OriginFallback, Err: err}
}
