package compose

import (
	"image"
	"image/color"

	"github.com/matzehuels/dailywall/pkg/errors"
)

// MaskThreshold is the gray level above which a panel pixel counts as
// text.
const MaskThreshold = 220

// Luma returns the BT.601 gray level of an 8-bit colour, using 14-bit
// fixed-point weights so that equal channels map to themselves.
func Luma(r, g, b uint8) uint8 {
	return uint8((uint32(r)*4899 + uint32(g)*9617 + uint32(b)*1868 + 8192) >> 14)
}

// Mask returns a binary mask of p: 255 where the gray level of the pixel
// exceeds MaskThreshold, 0 elsewhere. The mask has p's size with its
// origin at (0, 0).
func Mask(p image.Image) *image.Gray {
	b := p.Bounds()
	mask := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.RGBAModel.Convert(p.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			if Luma(c.R, c.G, c.B) > MaskThreshold {
				mask.Pix[mask.PixOffset(x, y)] = 255
			}
		}
	}
	return mask
}

// InvertMask returns the bitwise complement of m.
func InvertMask(m *image.Gray) *image.Gray {
	inv := image.NewGray(m.Bounds())
	for i, v := range m.Pix {
		inv.Pix[i] = ^v
	}
	return inv
}

// Overlay composites panel p onto base with its top-left corner at at.
//
// The affected region spans the panel's rows and every column from at.X
// to the right edge of base, clipped to base. Columns beyond the panel's
// own width are treated as black panel background. The region is first
// blended 50/50 with the panel, then pixels under the panel's text mask
// are replaced with the panel's own colour.
func Overlay(base *image.RGBA, p image.Image, at image.Point) error {
	if base == nil || p == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil canvas or panel")
	}
	bb := base.Bounds()
	if at.X < 0 || at.Y < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "panel origin %v is negative", at)
	}
	origin := bb.Min.Add(at)
	if !origin.In(bb) {
		return errors.New(errors.ErrCodeInvalidInput, "panel origin %v is outside the %dx%d canvas", at, bb.Dx(), bb.Dy())
	}
	pb := p.Bounds()
	if pb.Empty() {
		return errors.New(errors.ErrCodeInvalidInput, "panel is empty")
	}

	region := image.Rect(origin.X, origin.Y, bb.Max.X, origin.Y+pb.Dy()).Intersect(bb)
	layer := panelLayer(p, region.Size())
	mask := Mask(layer)
	inv := InvertMask(mask)

	blend(base, region, layer)
	redraw(base, region, layer, mask, inv)
	return nil
}

// panelLayer copies p into an opaque image of the region size, padding
// with black where p is narrower or cropping where it is larger.
func panelLayer(p image.Image, size image.Point) *image.RGBA {
	layer := image.NewRGBA(image.Rectangle{Max: size})
	pb := p.Bounds()
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			o := layer.PixOffset(x, y)
			layer.Pix[o+3] = 255
			if x >= pb.Dx() || y >= pb.Dy() {
				continue
			}
			c := color.RGBAModel.Convert(p.At(pb.Min.X+x, pb.Min.Y+y)).(color.RGBA)
			layer.Pix[o+0] = c.R
			layer.Pix[o+1] = c.G
			layer.Pix[o+2] = c.B
		}
	}
	return layer
}

// blend averages the layer into base over region, rounding halves up.
func blend(base *image.RGBA, region image.Rectangle, layer *image.RGBA) {
	for y := 0; y < region.Dy(); y++ {
		bo := base.PixOffset(region.Min.X, region.Min.Y+y)
		lo := layer.PixOffset(0, y)
		for x := 0; x < region.Dx(); x++ {
			for c := range 3 {
				a, b := uint16(layer.Pix[lo+c]), uint16(base.Pix[bo+c])
				base.Pix[bo+c] = uint8((a + b + 1) / 2)
			}
			bo += 4
			lo += 4
		}
	}
}

// redraw sets region = saturate(region AND inv + layer AND mask).
func redraw(base *image.RGBA, region image.Rectangle, layer *image.RGBA, mask, inv *image.Gray) {
	for y := 0; y < region.Dy(); y++ {
		bo := base.PixOffset(region.Min.X, region.Min.Y+y)
		lo := layer.PixOffset(0, y)
		mo := mask.PixOffset(0, y)
		for x := 0; x < region.Dx(); x++ {
			m, n := mask.Pix[mo+x], inv.Pix[mo+x]
			for c := range 3 {
				sum := uint16(base.Pix[bo+c]&n) + uint16(layer.Pix[lo+c]&m)
				base.Pix[bo+c] = uint8(min(sum, 255))
			}
			bo += 4
			lo += 4
		}
	}
}
