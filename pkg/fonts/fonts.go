// Package fonts provides the typefaces used to draw the overlay panels.
//
// A bold sans-serif face is compiled into the binary, making a run
// independent of the fonts installed on the host. A system font can be
// chosen by name, resolved with go-findfont, or loaded from an explicit
// TrueType/OpenType file.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/dailywall/pkg/errors"
)

// DefaultName is the name reported for the embedded face.
const DefaultName = "Go Bold"

// Cache for the parsed embedded font (parsed once on first access).
var (
	defaultFont     *opentype.Font
	defaultFontErr  error
	defaultFontOnce sync.Once
)

// Default returns the embedded bold face.
func Default() (*opentype.Font, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = opentype.Parse(gobold.TTF)
	})
	if defaultFontErr != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, defaultFontErr, "parse embedded font")
	}
	return defaultFont, nil
}

// Load parses the font file at path.
func Load(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "read font %s", path)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse font %s", path)
	}
	return f, nil
}

// Find locates an installed font by file name (e.g. "arialbd.ttf" or
// "DejaVuSans-Bold") and parses it.
func Find(name string) (*opentype.Font, string, error) {
	path, err := findfont.Find(name)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeRender, err, "font %q not installed", name)
	}
	f, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return f, path, nil
}

// Resolve picks a font from the configured path or name, in that order,
// falling back to the embedded face when both are empty. The returned
// string describes where the font came from.
func Resolve(path, name string) (*opentype.Font, string, error) {
	switch {
	case path != "":
		f, err := Load(path)
		return f, path, err
	case name != "":
		return Find(name)
	default:
		f, err := Default()
		return f, DefaultName, err
	}
}
