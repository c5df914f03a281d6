package textlayout

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
)

// monospace measures every rune as size/2 pixels wide.
var monospace = MetricsFunc(func(s string, size float64) float64 {
	return float64(len([]rune(s))) * size / 2
})

func TestWrap(t *testing.T) {
	// At size 10 each rune is 5px, so 50px holds 10 runes.
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"fits on one line", "short joke", 50, []string{"short joke"}},
		{"exact fit", "aaaa bbbbb", 50, []string{"aaaa bbbbb"}},
		{"breaks greedily", "aaaa bbbb cccc dddd", 50, []string{"aaaa bbbb", "cccc dddd"}},
		{"collapses whitespace", "  a \t b\n\nc  ", 50, []string{"a b c"}},
		{"keeps punctuation", "Why? Because, well... yes!", 50, []string{"Why?", "Because,", "well...", "yes!"}},
		{"overlong word alone", "supercalifragilistic", 50, []string{"supercalifragilistic"}},
		{"overlong word between", "a supercalifragilistic b", 50, []string{"a", "supercalifragilistic", "b"}},
		{"empty text", "", 50, []string{""}},
		{"whitespace only", "   ", 50, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width, monospace, 10)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Wrap(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestWrapDeterministic(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog while the Spartan watches."
	first := Wrap(text, 80, monospace, 12)
	for range 10 {
		if got := Wrap(text, 80, monospace, 12); !slices.Equal(got, first) {
			t.Fatalf("Wrap is not deterministic: %q vs %q", got, first)
		}
	}
}

// TestWrapProperties checks, over random inputs, that rejoining the lines
// reproduces the word sequence and that only single overlong words exceed
// the width budget.
func TestWrapProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := range 500 {
		var words []string
		for range rng.IntN(40) {
			words = append(words, strings.Repeat("x", 1+rng.IntN(15)))
		}
		text := strings.Join(words, " ")
		width := float64(10 + rng.IntN(120))

		lines := Wrap(text, width, monospace, 8)

		rejoined := strings.Fields(strings.Join(lines, " "))
		if !slices.Equal(rejoined, words) && !(len(words) == 0 && len(rejoined) == 0) {
			t.Fatalf("case %d: rejoined words differ\n got %q\nwant %q", i, rejoined, words)
		}
		for _, line := range lines {
			if Fits(line, width, monospace, 8) {
				continue
			}
			if len(strings.Fields(line)) != 1 {
				t.Fatalf("case %d: line %q exceeds width %.0f with more than one word", i, line, width)
			}
		}
	}
}

func TestWrapMeasuresWithSpace(t *testing.T) {
	var measured []string
	m := MetricsFunc(func(s string, size float64) float64 {
		measured = append(measured, s)
		return monospace(s, size)
	})
	Wrap("ab cd", 100, m, 10)
	if !slices.Equal(measured, []string{"ab cd"}) {
		t.Errorf("measured %q, want the candidate line including its space", measured)
	}
}

func TestLayoutRow(t *testing.T) {
	cells, err := LayoutRow([]string{"1pm", "54°", "Cloudy with a long description", "10%"}, []float64{5, 55, 90, 205})
	if err != nil {
		t.Fatalf("LayoutRow: %v", err)
	}
	wantX := []float64{5, 55, 90, 205}
	for i, c := range cells {
		if c.X != wantX[i] {
			t.Errorf("cell %d X = %v, want %v", i, c.X, wantX[i])
		}
	}
	if cells[2].Text != "Cloudy with a long description" {
		t.Errorf("cell text should be unmodified, got %q", cells[2].Text)
	}
}

func TestLayoutRowMismatch(t *testing.T) {
	if _, err := LayoutRow([]string{"a", "b"}, []float64{0}); err == nil {
		t.Error("LayoutRow should reject a cell/column count mismatch")
	}
}
