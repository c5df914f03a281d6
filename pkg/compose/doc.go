// Package compose builds the wallpaper canvas.
//
// [Fit] letterboxes the background image onto a black canvas of the display
// size, preserving its aspect ratio and centring it. [Overlay] then
// composites panels onto the canvas in two passes:
//
//  1. The panel region (from the panel origin to the right edge of the
//     canvas) is blended 50/50 with the panel, darkening the background
//     behind the dark panel body.
//  2. Pixels where the panel is bright (gray value above [MaskThreshold])
//     are redrawn at full panel intensity, so text stays crisp while the
//     panel background stays translucent.
//
// The canvas is always an opaque *image.RGBA; only the colour channels
// carry information.
package compose
