package textlayout

// Metrics measures rendered text.
type Metrics interface {
	// MeasureText returns the advance width in pixels of s set at size.
	MeasureText(s string, size float64) float64
}

// MetricsFunc adapts a function to the Metrics interface.
type MetricsFunc func(s string, size float64) float64

// MeasureText calls f(s, size).
func (f MetricsFunc) MeasureText(s string, size float64) float64 { return f(s, size) }

// Fits reports whether line fits within maxWidth when set at size.
func Fits(line string, maxWidth float64, m Metrics, size float64) bool {
	return m.MeasureText(line, size) <= maxWidth
}
