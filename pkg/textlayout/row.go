package textlayout

import "fmt"

// Cell is a piece of text placed at a horizontal offset on a line.
type Cell struct {
	Text string
	X    float64
}

// LayoutRow places each cell at the x offset of its column. Cells are not
// wrapped or clipped; a long cell may run into the next column.
func LayoutRow(cells []string, columns []float64) ([]Cell, error) {
	if len(cells) != len(columns) {
		return nil, fmt.Errorf("row has %d cells for %d columns", len(cells), len(columns))
	}
	out := make([]Cell, len(cells))
	for i, text := range cells {
		out[i] = Cell{Text: text, X: columns[i]}
	}
	return out, nil
}
