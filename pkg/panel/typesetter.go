package panel

import (
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/dailywall/pkg/errors"
	"github.com/matzehuels/dailywall/pkg/textlayout"
)

// Typesetter measures and draws text.
type Typesetter interface {
	textlayout.Metrics

	// DrawText draws s onto dc in the context's current colour with its
	// left edge at x and its baseline at y.
	DrawText(dc *gg.Context, x, y float64, s string, size float64)
}

// FontTypesetter sets text in a single OpenType font. Faces are created
// lazily, one per point size, at 72 DPI so that sizes are pixel heights.
// It is not safe for concurrent use.
type FontTypesetter struct {
	font  *opentype.Font
	faces map[float64]font.Face
	err   error
}

// NewFontTypesetter returns a typesetter for f.
func NewFontTypesetter(f *opentype.Font) *FontTypesetter {
	return &FontTypesetter{font: f, faces: make(map[float64]font.Face)}
}

// MeasureText returns the advance width of s at size in pixels.
func (t *FontTypesetter) MeasureText(s string, size float64) float64 {
	face := t.face(size)
	if face == nil {
		return 0
	}
	return float64(font.MeasureString(face, s)) / 64
}

// DrawText draws s with its baseline at y.
func (t *FontTypesetter) DrawText(dc *gg.Context, x, y float64, s string, size float64) {
	face := t.face(size)
	if face == nil {
		return
	}
	dc.SetFontFace(face)
	dc.DrawString(s, x, y)
}

// Err returns the first error raised while creating a face. Measurements
// and drawing after a failure are no-ops, so callers check Err once the
// panel is complete.
func (t *FontTypesetter) Err() error {
	return t.err
}

// Close releases the cached faces.
func (t *FontTypesetter) Close() error {
	for size, face := range t.faces {
		_ = face.Close()
		delete(t.faces, size)
	}
	return nil
}

func (t *FontTypesetter) face(size float64) font.Face {
	if face, ok := t.faces[size]; ok {
		return face
	}
	if t.err != nil {
		return nil
	}
	face, err := opentype.NewFace(t.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		t.err = errors.Wrap(errors.ErrCodeRender, err, "create %.0fpx face", size)
		return nil
	}
	t.faces[size] = face
	return face
}
