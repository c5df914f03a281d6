package textlayout_test

import (
	"fmt"

	"github.com/matzehuels/dailywall/pkg/textlayout"
)

// monospace measures every rune as half the font size.
var monospace = textlayout.MetricsFunc(func(s string, size float64) float64 {
	return float64(len([]rune(s))) * size / 2
})

func ExampleWrap() {
	joke := "Why did the Spartan cross the road? To finish the fight."

	// 16px text at 8px per rune fits 15 runes in 120px
	for _, line := range textlayout.Wrap(joke, 120, monospace, 16) {
		fmt.Printf("%q\n", line)
	}
	// Output:
	// "Why did the"
	// "Spartan cross"
	// "the road? To"
	// "finish the"
	// "fight."
}

func ExampleWrap_overlongWord() {
	// A word wider than the line is kept whole on its own line
	lines := textlayout.Wrap("Supercalifragilistic", 40, monospace, 16)
	fmt.Println(len(lines), lines[0])
	// Output:
	// 1 Supercalifragilistic
}

func ExampleLayoutRow() {
	cells, err := textlayout.LayoutRow(
		[]string{"1pm", "64°", "Sunny", "5%"},
		[]float64{5, 55, 90, 205},
	)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, c := range cells {
		fmt.Printf("%-5s at x=%g\n", c.Text, c.X)
	}
	// Output:
	// 1pm   at x=5
	// 64°   at x=55
	// Sunny at x=90
	// 5%    at x=205
}
