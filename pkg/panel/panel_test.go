package panel

import (
	"fmt"
	"image/color"
	"strings"
	"testing"

	"github.com/fogleman/gg"

	"github.com/matzehuels/dailywall/pkg/errors"
	"github.com/matzehuels/dailywall/pkg/fonts"
	"github.com/matzehuels/dailywall/pkg/sources"
)

type drawCall struct {
	X, Y float64
	Text string
	Size float64
}

// stubTypesetter measures every rune as size/2 pixels and records draws
// instead of rasterising.
type stubTypesetter struct {
	calls []drawCall
}

func (s *stubTypesetter) MeasureText(text string, size float64) float64 {
	return float64(len([]rune(text))) * size / 2
}

func (s *stubTypesetter) DrawText(_ *gg.Context, x, y float64, text string, size float64) {
	s.calls = append(s.calls, drawCall{x, y, text, size})
}

func (s *stubTypesetter) find(text string) []drawCall {
	var out []drawCall
	for _, c := range s.calls {
		if c.Text == text {
			out = append(out, c)
		}
	}
	return out
}

func forecast(n int) []sources.ForecastRow {
	rows := make([]sources.ForecastRow, n)
	for i := range rows {
		rows[i] = sources.ForecastRow{
			Time:          fmt.Sprintf("t%d", i),
			Temperature:   fmt.Sprintf("%d°", 50+i),
			Description:   fmt.Sprintf("desc%d", i),
			Precipitation: fmt.Sprintf("%d%%", i*10),
		}
	}
	return rows
}

func TestRenderWeatherRows(t *testing.T) {
	ts := &stubTypesetter{}
	r := NewRenderer(DefaultConfig(), ts)

	p, err := r.RenderWeather(forecast(8))
	if err != nil {
		t.Fatalf("RenderWeather: %v", err)
	}
	if b := p.Bounds(); b.Dx() != 240 || b.Dy() != 320 {
		t.Errorf("panel size = %v, want 240x320", b.Size())
	}
	if p.Rows != 8 {
		t.Errorf("Rows = %d, want 8", p.Rows)
	}

	columns := []float64{5, 55, 90, 205}
	for i, row := range forecast(8) {
		wantY := 70 + 31*float64(i)
		for j, cell := range row.Cells() {
			calls := ts.find(cell)
			if len(calls) != 1 {
				t.Fatalf("row %d cell %q drawn %d times", i, cell, len(calls))
			}
			if calls[0].X != columns[j] || calls[0].Y != wantY {
				t.Errorf("row %d cell %q at (%v,%v), want (%v,%v)", i, cell, calls[0].X, calls[0].Y, columns[j], wantY)
			}
			if calls[0].Size != 16 {
				t.Errorf("row %d cell size = %v, want 16", i, calls[0].Size)
			}
		}
	}
}

func TestRenderWeatherTitleAndHeader(t *testing.T) {
	ts := &stubTypesetter{}
	r := NewRenderer(DefaultConfig(), ts)
	if _, err := r.RenderWeather(nil); err != nil {
		t.Fatalf("RenderWeather: %v", err)
	}

	title := ts.find("Weather")
	if len(title) != 1 {
		t.Fatalf("title drawn %d times", len(title))
	}
	// "Weather" is 7 runes at 10px each, centred in 240px.
	if title[0].X != 85 || title[0].Y != 20 || title[0].Size != 20 {
		t.Errorf("title call = %+v, want x=85 y=20 size=20", title[0])
	}

	for _, h := range []string{"Time", "Temp", "Desc", "Rain"} {
		calls := ts.find(h)
		if len(calls) != 1 || calls[0].Y != 45 {
			t.Errorf("header %q calls = %+v, want one at baseline 45", h, calls)
		}
	}
}

func TestRenderWeatherTruncatesRows(t *testing.T) {
	ts := &stubTypesetter{}
	r := NewRenderer(DefaultConfig(), ts)
	p, err := r.RenderWeather(forecast(11))
	if err != nil {
		t.Fatalf("RenderWeather: %v", err)
	}
	if p.Rows != 8 {
		t.Errorf("Rows = %d, want 8", p.Rows)
	}
	if calls := ts.find("t8"); len(calls) != 0 {
		t.Error("ninth row should not be drawn")
	}
}

func TestRenderWeatherRule(t *testing.T) {
	r := NewRenderer(DefaultConfig(), &stubTypesetter{})
	p, err := r.RenderWeather(nil)
	if err != nil {
		t.Fatalf("RenderWeather: %v", err)
	}
	for _, x := range []int{0, 120, 239} {
		if c := p.Image.RGBAAt(x, 44); c.R <= 220 || c.G <= 220 || c.B <= 220 {
			t.Errorf("rule pixel (%d,44) = %v, want near white", x, c)
		}
	}
	if c := p.Image.RGBAAt(120, 100); c != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("background pixel = %v, want opaque black", c)
	}
}

func TestRenderWeatherInvalidLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weather.Columns = []float64{5, 55}
	r := NewRenderer(cfg, &stubTypesetter{})
	if _, err := r.RenderWeather(forecast(1)); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("RenderWeather with 2 columns = %v, want INVALID_CONFIG", err)
	}
}

func TestRenderJokeHeight(t *testing.T) {
	// Body text is 8px per rune; the wrap width is 240 - 2*10 = 220.
	tests := []struct {
		name      string
		text      string
		wantLines int
	}{
		{"one short line", "Knock knock.", 1},
		{"single overlong word", strings.Repeat("x", 60), 1},
		{"two lines", strings.Repeat("word ", 6) + strings.Repeat("more ", 4), 2},
		{"six lines", strings.Repeat("abcdefghij ", 12), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := &stubTypesetter{}
			r := NewRenderer(DefaultConfig(), ts)
			p, err := r.RenderJoke(tt.text)
			if err != nil {
				t.Fatalf("RenderJoke: %v", err)
			}
			if len(p.Lines) != tt.wantLines {
				t.Fatalf("lines = %q, want %d lines", p.Lines, tt.wantLines)
			}
			if want := 45 + 25*tt.wantLines; p.Bounds().Dy() != want {
				t.Errorf("height = %d, want %d", p.Bounds().Dy(), want)
			}
			if p.Bounds().Dx() != 240 {
				t.Errorf("width = %d, want 240", p.Bounds().Dx())
			}
			for i, line := range p.Lines {
				calls := ts.find(line)
				if len(calls) == 0 {
					t.Fatalf("line %q not drawn", line)
				}
				if calls[0].X != 10 || calls[0].Y != 45+25*float64(i) {
					t.Errorf("line %d at (%v,%v), want (10,%v)", i, calls[0].X, calls[0].Y, 45+25*i)
				}
			}
		})
	}
}

func TestRenderJokeMaxHeight(t *testing.T) {
	r := NewRenderer(DefaultConfig(), &stubTypesetter{})
	p, err := r.RenderJoke(strings.Repeat("abcdefghij ", 60))
	if err != nil {
		t.Fatalf("RenderJoke: %v", err)
	}
	if h := p.Bounds().Dy(); h > 300 {
		t.Errorf("height = %d, exceeds max height 300", h)
	}
	if len(p.Lines) != 10 {
		t.Errorf("kept %d lines, want 10", len(p.Lines))
	}

	cfg := DefaultConfig()
	cfg.Joke.MaxHeight = 10
	r = NewRenderer(cfg, &stubTypesetter{})
	p, err = r.RenderJoke("one two three four five six seven eight nine ten eleven twelve")
	if err != nil {
		t.Fatalf("RenderJoke: %v", err)
	}
	if len(p.Lines) != 1 {
		t.Errorf("kept %d lines, want at least one line kept", len(p.Lines))
	}
}

func TestFontTypesetter(t *testing.T) {
	f, err := fonts.Default()
	if err != nil {
		t.Fatal(err)
	}
	ts := NewFontTypesetter(f)
	defer ts.Close()

	short := ts.MeasureText("Joke", 16)
	long := ts.MeasureText("Joke of the day", 16)
	if short <= 0 || long <= short {
		t.Errorf("MeasureText short=%v long=%v, want 0 < short < long", short, long)
	}
	if big := ts.MeasureText("Joke", 32); big <= short {
		t.Errorf("MeasureText at 32 = %v, want larger than at 16 (%v)", big, short)
	}

	r := NewRenderer(DefaultConfig(), ts)
	p, err := r.RenderJoke("Why did the Spartan cross the road?")
	if err != nil {
		t.Fatalf("RenderJoke: %v", err)
	}
	bright := 0
	b := p.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c := p.Image.RGBAAt(x, y); c.R > 220 && c.G > 220 && c.B > 220 {
				bright++
			}
		}
	}
	if bright == 0 {
		t.Error("rendered joke has no bright text pixels")
	}
	if err := ts.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}
