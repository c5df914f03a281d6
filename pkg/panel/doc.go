// Package panel draws the overlay panels composited onto the wallpaper.
//
// A panel is a small black image carrying a title and near-white text.
// The black background matters: the compositor turns it into a
// half-transparent shade and keeps only the bright text pixels opaque.
//
// Two panels are rendered:
//
//   - Weather: a fixed-size table of up to eight forecast rows
//   - Joke: wrapped paragraph text, cropped to the lines actually drawn
//
// All geometry comes from [Config]; [DefaultConfig] reproduces the classic
// 240 pixel wide layout. Text is measured and drawn through a [Typesetter],
// so layout can be tested without real fonts.
package panel
