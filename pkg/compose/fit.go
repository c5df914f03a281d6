package compose

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/dailywall/pkg/errors"
)

// aspectTolerance is the slack allowed when comparing aspect ratios, so
// that sizes with the same ratio are treated as equal.
const aspectTolerance = 1e-9

// NewCanvas returns an opaque black canvas.
func NewCanvas(width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas size %dx%d must be positive", width, height)
	}
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return canvas, nil
}

// FitRect returns where an image of size srcW×srcH lands on a canvas of
// size dstW×dstH.
//
// An image wider than the canvas spans the full width and is centred
// vertically; a taller image spans the full height and is centred
// horizontally. An image with the same aspect ratio fills the canvas.
// Offsets are truncated, so when the spare space is odd the far margin is
// one pixel wider.
func FitRect(srcW, srcH, dstW, dstH int) (image.Rectangle, error) {
	if srcW <= 0 || srcH <= 0 {
		return image.Rectangle{}, errors.New(errors.ErrCodeInvalidInput, "image size %dx%d must be positive", srcW, srcH)
	}
	if dstW <= 0 || dstH <= 0 {
		return image.Rectangle{}, errors.New(errors.ErrCodeInvalidInput, "canvas size %dx%d must be positive", dstW, dstH)
	}

	src := float64(srcW) / float64(srcH)
	dst := float64(dstW) / float64(dstH)

	switch {
	case src-dst > aspectTolerance:
		h := max(int(float64(srcH)*float64(dstW)/float64(srcW)), 1)
		top := int(float64(dstH)/2 - float64(h)/2)
		return image.Rect(0, top, dstW, top+h), nil
	case dst-src > aspectTolerance:
		w := max(int(float64(srcW)*float64(dstH)/float64(srcH)), 1)
		left := int(float64(dstW)/2 - float64(w)/2)
		return image.Rect(left, 0, left+w, dstH), nil
	default:
		return image.Rect(0, 0, dstW, dstH), nil
	}
}

// Fit returns a new width×height canvas with img fitted onto it.
func Fit(img image.Image, width, height int) (*image.RGBA, error) {
	canvas, err := NewCanvas(width, height)
	if err != nil {
		return nil, err
	}
	if _, err := FitInto(canvas, img); err != nil {
		return nil, err
	}
	return canvas, nil
}

// FitInto resizes img with bilinear sampling and copies it onto canvas at
// the rectangle computed by FitRect, which it returns. Pixels outside the
// rectangle are left untouched. The image's alpha channel is discarded.
func FitInto(canvas *image.RGBA, img image.Image) (image.Rectangle, error) {
	if canvas == nil || img == nil {
		return image.Rectangle{}, errors.New(errors.ErrCodeInvalidInput, "nil canvas or image")
	}
	cb := canvas.Bounds()
	rect, err := FitRect(img.Bounds().Dx(), img.Bounds().Dy(), cb.Dx(), cb.Dy())
	if err != nil {
		return image.Rectangle{}, err
	}
	rect = rect.Add(cb.Min)

	resized := imaging.Resize(img, rect.Dx(), rect.Dy(), imaging.Linear)
	copyOpaque(canvas, rect, resized)
	return rect, nil
}

// copyOpaque copies the colour channels of src onto dst at rect, setting
// alpha to fully opaque.
func copyOpaque(dst *image.RGBA, rect image.Rectangle, src *image.NRGBA) {
	rect = rect.Intersect(dst.Bounds())
	w := min(rect.Dx(), src.Bounds().Dx())
	for y := 0; y < rect.Dy() && y < src.Bounds().Dy(); y++ {
		so := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		do := dst.PixOffset(rect.Min.X, rect.Min.Y+y)
		for x := 0; x < w; x++ {
			dst.Pix[do+0] = src.Pix[so+0]
			dst.Pix[do+1] = src.Pix[so+1]
			dst.Pix[do+2] = src.Pix[so+2]
			dst.Pix[do+3] = math.MaxUint8
			so += 4
			do += 4
		}
	}
}
