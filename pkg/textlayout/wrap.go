package textlayout

import "strings"

// Wrap breaks text into lines no wider than maxWidth.
//
// Words are split on whitespace, with punctuation kept attached. Words are
// added greedily: before appending a word, the width of "line + space +
// word" is measured and, if it exceeds maxWidth, the current line is
// emitted and the word starts a new one. A word wider than maxWidth is
// emitted on a line of its own and never split. The final line is always
// emitted, so empty text yields a single empty line.
func Wrap(text string, maxWidth float64, m Metrics, size float64) []string {
	var (
		lines   []string
		current []string
	)
	for _, word := range strings.Fields(text) {
		if len(current) > 0 {
			candidate := strings.Join(current, " ") + " " + word
			if m.MeasureText(candidate, size) > maxWidth {
				lines = append(lines, strings.Join(current, " "))
				current = current[:0]
			}
		}
		current = append(current, word)
	}
	return append(lines, strings.Join(current, " "))
}
