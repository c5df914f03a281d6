package config

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/dailywall/pkg/compose"
	"github.com/matzehuels/dailywall/pkg/errors"
	"github.com/matzehuels/dailywall/pkg/panel"
)

// MaxQuality is the highest JPEG quality.
const MaxQuality = 100

// Validate checks the configuration for values that would fail a run.
func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid configuration")
	}
	return nil
}

func (c *Config) validate() error {
	d := c.Display
	if d.Width < 0 || d.Height < 0 {
		return fmt.Errorf("display size %dx%d is negative", d.Width, d.Height)
	}
	if (d.Width == 0) != (d.Height == 0) {
		return fmt.Errorf("display width and height must be set together")
	}
	if d.FallbackWidth <= 0 || d.FallbackHeight <= 0 {
		return fmt.Errorf("fallback display size %dx%d must be positive", d.FallbackWidth, d.FallbackHeight)
	}

	for name, u := range map[string]string{
		"catalog_url": c.Sources.CatalogURL,
		"weather_url": c.Sources.WeatherURL,
		"joke_url":    c.Sources.JokeURL,
	} {
		if err := errors.ValidateURL(u); err != nil {
			return fmt.Errorf("sources.%s: %w", name, err)
		}
	}
	if c.Sources.SkipGroups < 0 {
		return fmt.Errorf("sources.skip_groups %d is negative", c.Sources.SkipGroups)
	}
	if c.Sources.Timeout < 0 {
		return fmt.Errorf("sources.timeout %s is negative", c.Sources.Timeout)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl %s is negative", c.Cache.TTL)
	}

	if err := c.Panels.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Panels.Joke.Validate(); err != nil {
		return err
	}
	if _, err := c.TextColor(); err != nil {
		return err
	}

	if q := c.Output.Quality; q < 1 || q > MaxQuality {
		return fmt.Errorf("output.quality %d must be between 1 and %d", q, MaxQuality)
	}
	if c.Output.ImagePath != "" {
		if err := errors.ValidateOutputPath(c.Output.ImagePath); err != nil {
			return fmt.Errorf("output.image_path: %w", err)
		}
	}
	if c.Output.ProvenancePath != "" {
		if err := errors.ValidateOutputPath(c.Output.ProvenancePath); err != nil {
			return fmt.Errorf("output.provenance_path: %w", err)
		}
	}
	return nil
}

// TextColor parses the panel text colour. The colour must be bright
// enough to pass the compositor's text mask, or the text would be
// blended away with the panel background.
func (c *Config) TextColor() (color.Color, error) {
	col, err := colorful.Hex(c.Panels.TextColor)
	if err != nil {
		return nil, fmt.Errorf("panels.text_color %q: %w", c.Panels.TextColor, err)
	}
	r, g, b := col.RGB255()
	if compose.Luma(r, g, b) <= compose.MaskThreshold {
		return nil, fmt.Errorf("panels.text_color %q is too dark to show as text", c.Panels.TextColor)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// PanelConfig returns the renderer configuration.
func (c *Config) PanelConfig() (panel.Config, error) {
	tc, err := c.TextColor()
	if err != nil {
		return panel.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "panels")
	}
	return panel.Config{
		Weather:   c.Panels.Weather,
		Joke:      c.Panels.Joke,
		TextColor: tc,
	}, nil
}
