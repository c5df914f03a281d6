// Package textlayout places text for the overlay panels.
//
// It knows nothing about rasterisation: widths come from a [Metrics]
// implementation, so the layout rules can be tested with a deterministic
// stub instead of a real font.
//
// Two layouts are provided:
//
//   - [Wrap]: greedy paragraph wrapping to a pixel width budget
//   - [LayoutRow]: fixed-column table rows, one cell per column offset
package textlayout
