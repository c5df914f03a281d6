package panel

import (
	"fmt"
	"image/color"
)

// fieldsPerRow is the number of cells in a forecast row: time,
// temperature, description and chance of rain.
const fieldsPerRow = 4

// WeatherLayout holds the geometry of the weather panel. Baselines are
// measured from the top edge of the panel in pixels.
type WeatherLayout struct {
	Width            int       `toml:"width" yaml:"width"`
	Height           int       `toml:"height" yaml:"height"`
	Title            string    `toml:"title" yaml:"title"`
	Headers          []string  `toml:"headers" yaml:"headers"`
	Columns          []float64 `toml:"columns" yaml:"columns"`
	TitleSize        float64   `toml:"title_size" yaml:"title_size"`
	BodySize         float64   `toml:"body_size" yaml:"body_size"`
	TitleBaseline    float64   `toml:"title_baseline" yaml:"title_baseline"`
	HeaderBaseline   float64   `toml:"header_baseline" yaml:"header_baseline"`
	RuleY            float64   `toml:"rule_y" yaml:"rule_y"`
	FirstRowBaseline float64   `toml:"first_row_baseline" yaml:"first_row_baseline"`
	RowSpacing       float64   `toml:"row_spacing" yaml:"row_spacing"`
	MaxRows          int       `toml:"max_rows" yaml:"max_rows"`
}

// JokeLayout holds the geometry of the joke panel.
type JokeLayout struct {
	Width             int     `toml:"width" yaml:"width"`
	MaxHeight         int     `toml:"max_height" yaml:"max_height"`
	Title             string  `toml:"title" yaml:"title"`
	TitleSize         float64 `toml:"title_size" yaml:"title_size"`
	BodySize          float64 `toml:"body_size" yaml:"body_size"`
	TitleBaseline     float64 `toml:"title_baseline" yaml:"title_baseline"`
	FirstLineBaseline float64 `toml:"first_line_baseline" yaml:"first_line_baseline"`
	LineSpacing       float64 `toml:"line_spacing" yaml:"line_spacing"`
	Margin            float64 `toml:"margin" yaml:"margin"`
}

// Config configures a Renderer.
type Config struct {
	Weather   WeatherLayout
	Joke      JokeLayout
	TextColor color.Color
}

// DefaultWeatherLayout returns the standard 240×320 weather table.
func DefaultWeatherLayout() WeatherLayout {
	return WeatherLayout{
		Width:            240,
		Height:           320,
		Title:            "Weather",
		Headers:          []string{"Time", "Temp", "Desc", "Rain"},
		Columns:          []float64{5, 55, 90, 205},
		TitleSize:        20,
		BodySize:         16,
		TitleBaseline:    20,
		HeaderBaseline:   45,
		RuleY:            44,
		FirstRowBaseline: 70,
		RowSpacing:       31,
		MaxRows:          8,
	}
}

// DefaultJokeLayout returns the standard 240 pixel wide joke panel.
func DefaultJokeLayout() JokeLayout {
	return JokeLayout{
		Width:             240,
		MaxHeight:         300,
		Title:             "Joke",
		TitleSize:         20,
		BodySize:          16,
		TitleBaseline:     20,
		FirstLineBaseline: 45,
		LineSpacing:       25,
		Margin:            10,
	}
}

// DefaultConfig returns the standard layouts with white text.
func DefaultConfig() Config {
	return Config{
		Weather:   DefaultWeatherLayout(),
		Joke:      DefaultJokeLayout(),
		TextColor: color.White,
	}
}

// Validate checks that the layouts describe drawable panels.
func (w WeatherLayout) Validate() error {
	switch {
	case w.Width <= 0 || w.Height <= 0:
		return fmt.Errorf("weather panel size %dx%d must be positive", w.Width, w.Height)
	case len(w.Columns) != fieldsPerRow:
		return fmt.Errorf("weather panel has %d columns, want %d", len(w.Columns), fieldsPerRow)
	case len(w.Headers) != 0 && len(w.Headers) != len(w.Columns):
		return fmt.Errorf("weather panel has %d headers for %d columns", len(w.Headers), len(w.Columns))
	case w.MaxRows < 0:
		return fmt.Errorf("weather panel max_rows %d is negative", w.MaxRows)
	case w.TitleSize <= 0 || w.BodySize <= 0:
		return fmt.Errorf("weather panel font sizes must be positive")
	}
	return nil
}

// Validate checks that the layout describes a drawable panel.
func (j JokeLayout) Validate() error {
	switch {
	case j.Width <= 0:
		return fmt.Errorf("joke panel width %d must be positive", j.Width)
	case j.MaxHeight < 0:
		return fmt.Errorf("joke panel max_height %d is negative", j.MaxHeight)
	case j.LineSpacing <= 0:
		return fmt.Errorf("joke panel line_spacing must be positive")
	case j.Margin < 0 || 2*j.Margin >= float64(j.Width):
		return fmt.Errorf("joke panel margin %.0f leaves no room for text", j.Margin)
	case j.TitleSize <= 0 || j.BodySize <= 0:
		return fmt.Errorf("joke panel font sizes must be positive")
	}
	return nil
}
