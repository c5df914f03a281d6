// Package config loads dailywall configuration.
//
// Configuration is read from a TOML file (or YAML, selected by a .yaml or
// .yml extension) and layered over [Default]. Every field is optional: an
// empty file, or no file at all, yields the defaults. The default location
// is $XDG_CONFIG_HOME/dailywall/config.toml, falling back to
// ~/.config/dailywall/config.toml.
//
// Example:
//
//	[display]
//	width  = 2560
//	height = 1440
//
//	[sources]
//	weather_url = "https://weather.com/weather/hourbyhour/l/..."
//	seed        = 7
//
//	[cache]
//	ttl       = "12h"
//	redis_url = "redis://localhost:6379/0"
//
//	[panels]
//	text_color = "#f0f0f0"
//
//	[output]
//	image_path    = "~/Pictures/desktop_background.jpg"
//	set_wallpaper = false
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/dailywall/pkg/cache"
	"github.com/matzehuels/dailywall/pkg/errors"
	"github.com/matzehuels/dailywall/pkg/panel"
	"github.com/matzehuels/dailywall/pkg/sources"
)

const appName = "dailywall"

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultFallbackWidth and DefaultFallbackHeight are used when the display
	// size is neither configured nor detectable.
	DefaultFallbackWidth  = 1920
	DefaultFallbackHeight = 1080

	// DefaultTimeout bounds every HTTP request.
	DefaultTimeout = 30 * time.Second

	// DefaultSkipGroups is the number of leading catalog groups ignored when
	// picking a category. The first group lists books rather than artwork.
	DefaultSkipGroups = 1

	// DefaultQuality is the JPEG encoding quality.
	DefaultQuality = 90

	// DefaultImageName and DefaultProvenanceName are the output file names.
	DefaultImageName      = "desktop_background.jpg"
	DefaultProvenanceName = "BackgroundInfo.txt"

	// DefaultTextColor is the panel text colour.
	DefaultTextColor = "#ffffff"
)

// =============================================================================
// Config Types
// =============================================================================

// Config is the complete dailywall configuration.
type Config struct {
	Display DisplayConfig `toml:"display" yaml:"display"`
	Sources SourcesConfig `toml:"sources" yaml:"sources"`
	Cache   CacheConfig   `toml:"cache" yaml:"cache"`
	Panels  PanelsConfig  `toml:"panels" yaml:"panels"`
	Font    FontConfig    `toml:"font" yaml:"font"`
	Output  OutputConfig  `toml:"output" yaml:"output"`
}

// DisplayConfig controls the canvas size. A zero Width or Height means
// detect the primary display.
type DisplayConfig struct {
	Width          int `toml:"width" yaml:"width"`
	Height         int `toml:"height" yaml:"height"`
	FallbackWidth  int `toml:"fallback_width" yaml:"fallback_width"`
	FallbackHeight int `toml:"fallback_height" yaml:"fallback_height"`
}

// SourcesConfig locates the scraped pages.
type SourcesConfig struct {
	CatalogURL string   `toml:"catalog_url" yaml:"catalog_url"`
	WeatherURL string   `toml:"weather_url" yaml:"weather_url"`
	JokeURL    string   `toml:"joke_url" yaml:"joke_url"`
	SkipGroups int      `toml:"skip_groups" yaml:"skip_groups"`
	Timeout    Duration `toml:"timeout" yaml:"timeout"`
	UserAgent  string   `toml:"user_agent" yaml:"user_agent"`

	// Seed makes image selection reproducible. Zero picks a fresh seed
	// each run.
	Seed uint64 `toml:"seed" yaml:"seed"`
}

// CacheConfig controls the page cache for catalog and category pages.
type CacheConfig struct {
	Enabled bool     `toml:"enabled" yaml:"enabled"`
	Dir     string   `toml:"dir" yaml:"dir"`
	TTL     Duration `toml:"ttl" yaml:"ttl"`

	// RedisURL selects a Redis backend instead of the file cache.
	RedisURL string `toml:"redis_url" yaml:"redis_url"`
}

// PanelsConfig holds panel geometry and colours.
type PanelsConfig struct {
	Weather   panel.WeatherLayout `toml:"weather" yaml:"weather"`
	Joke      panel.JokeLayout    `toml:"joke" yaml:"joke"`
	TextColor string              `toml:"text_color" yaml:"text_color"`
}

// FontConfig selects the panel font. Path wins over Name; with neither
// set the embedded font is used.
type FontConfig struct {
	Name string `toml:"name" yaml:"name"`
	Path string `toml:"path" yaml:"path"`
}

// OutputConfig controls where results are written.
type OutputConfig struct {
	ImagePath string `toml:"image_path" yaml:"image_path"`

	// ProvenancePath defaults to BackgroundInfo.txt next to the image.
	ProvenancePath string `toml:"provenance_path" yaml:"provenance_path"`
	Quality        int    `toml:"quality" yaml:"quality"`
	SetWallpaper   bool   `toml:"set_wallpaper" yaml:"set_wallpaper"`
}

// =============================================================================
// Defaults and Loading
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			FallbackWidth:  DefaultFallbackWidth,
			FallbackHeight: DefaultFallbackHeight,
		},
		Sources: SourcesConfig{
			CatalogURL: sources.DefaultCatalogURL,
			WeatherURL: sources.DefaultWeatherURL,
			JokeURL:    sources.DefaultJokeURL,
			SkipGroups: DefaultSkipGroups,
			Timeout:    Duration(DefaultTimeout),
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     Duration(cache.TTLPage),
		},
		Panels: PanelsConfig{
			Weather:   panel.DefaultWeatherLayout(),
			Joke:      panel.DefaultJokeLayout(),
			TextColor: DefaultTextColor,
		},
		Output: OutputConfig{
			Quality:      DefaultQuality,
			SetWallpaper: true,
		},
	}
}

// Load reads the file at path over the defaults and validates the result.
// An empty path loads the default location, where a missing file is not
// an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "locate config")
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err) && !explicit:
		// defaults only
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	default:
		if err := decode(path, data, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
		}
	}
	return nil
}

// Encode writes cfg as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// =============================================================================
// Paths
// =============================================================================

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the page cache directory: Cache.Dir when set,
// otherwise $XDG_CACHE_HOME/dailywall or ~/.cache/dailywall.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return expandHome(c.Cache.Dir)
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// ImagePath returns the wallpaper output path: Output.ImagePath when set,
// otherwise desktop_background.jpg in $XDG_DATA_HOME/dailywall or
// ~/.local/share/dailywall.
func (c *Config) ImagePath() (string, error) {
	if c.Output.ImagePath != "" {
		return expandHome(c.Output.ImagePath)
	}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName, DefaultImageName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, DefaultImageName), nil
}

// ProvenancePath returns the provenance file path: Output.ProvenancePath
// when set, otherwise BackgroundInfo.txt next to the image.
func (c *Config) ProvenancePath() (string, error) {
	if c.Output.ProvenancePath != "" {
		return expandHome(c.Output.ProvenancePath)
	}
	img, err := c.ImagePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(img), DefaultProvenanceName), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
