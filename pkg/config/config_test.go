package config

import (
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/dailywall/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("Load with no config file should return defaults")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load(missing) = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[display]
width = 2560
height = 1440

[sources]
seed = 7
timeout = "5s"

[cache]
ttl = "12h"
redis_url = "redis://localhost:6379/0"

[panels]
text_color = "#f0f0f0"

[panels.joke]
max_height = 200

[output]
quality = 75
set_wallpaper = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Display.Width != 2560 || cfg.Display.Height != 1440 {
		t.Errorf("display = %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Sources.Seed != 7 || cfg.Sources.Timeout.Std() != 5*time.Second {
		t.Errorf("sources = %+v", cfg.Sources)
	}
	if cfg.Cache.TTL.Std() != 12*time.Hour || cfg.Cache.RedisURL == "" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Panels.Joke.MaxHeight != 200 {
		t.Errorf("joke max_height = %d, want 200", cfg.Panels.Joke.MaxHeight)
	}
	// Keys not in the file keep their defaults.
	if cfg.Panels.Joke.Width != 240 || cfg.Sources.CatalogURL != Default().Sources.CatalogURL {
		t.Error("unset keys should keep their defaults")
	}
	if cfg.Output.Quality != 75 || cfg.Output.SetWallpaper {
		t.Errorf("output = %+v", cfg.Output)
	}
	if c, _ := cfg.TextColor(); c != (color.RGBA{0xf0, 0xf0, 0xf0, 0xff}) {
		t.Errorf("TextColor() = %v", c)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
display:
  width: 1280
  height: 720
sources:
  timeout: 45s
panels:
  weather:
    columns: [5, 55, 90, 160]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.Width != 1280 || cfg.Display.Height != 720 {
		t.Errorf("display = %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Sources.Timeout.Std() != 45*time.Second {
		t.Errorf("timeout = %v", cfg.Sources.Timeout)
	}
	if got := cfg.Panels.Weather.Columns; !reflect.DeepEqual(got, []float64{5, 55, 90, 160}) {
		t.Errorf("columns = %v", got)
	}
	if cfg.Panels.Weather.Height != 320 {
		t.Errorf("weather height = %d, want default 320", cfg.Panels.Weather.Height)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown key", "c.toml", "[display]\ndepth = 3\n"},
		{"bad syntax", "c.toml", "[display\n"},
		{"bad duration", "c.toml", "[sources]\ntimeout = \"soon\"\n"},
		{"width without height", "c.toml", "[display]\nwidth = 100\n"},
		{"negative size", "c.toml", "[display]\nwidth = -1\nheight = -1\n"},
		{"dark text", "c.toml", "[panels]\ntext_color = \"#808080\"\n"},
		{"not a colour", "c.toml", "[panels]\ntext_color = \"white\"\n"},
		{"bad url", "c.toml", "[sources]\njoke_url = \"ftp://example.com\"\n"},
		{"quality too high", "c.toml", "[output]\nquality = 101\n"},
		{"three columns", "c.toml", "[panels.weather]\ncolumns = [1, 2, 3]\n"},
		{"yaml syntax", "c.yml", "display: [\n"},
		{"yaml unknown key", "c.yaml", "display:\n  widht: 800\n"},
		{"yaml unknown section", "c.yml", "screen:\n  width: 800\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestEncodeLoadsBack(t *testing.T) {
	cfg := Default()
	cfg.Display.Width, cfg.Display.Height = 3440, 1440
	cfg.Cache.TTL = Duration(90 * time.Minute)

	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(data), `ttl = "1h30m0s"`) {
		t.Errorf("durations should encode as strings:\n%s", data)
	}

	got, err := Load(writeFile(t, "config.toml", string(data)))
	if err != nil {
		t.Fatalf("Load(encoded): %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("loaded config differs from encoded one:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	p, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg-config", appName, "config.toml"); p != want {
		t.Errorf("Path() = %q, want %q", p, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	p, err = Path()
	if err != nil {
		t.Fatal(err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".config", appName, "config.toml"); p != want {
		t.Errorf("Path() = %q, want %q", p, want)
	}
}

func TestOutputPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	cfg := Default()

	img, err := cfg.ImagePath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg-data", appName, DefaultImageName); img != want {
		t.Errorf("ImagePath() = %q, want %q", img, want)
	}
	prov, err := cfg.ProvenancePath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg-data", appName, DefaultProvenanceName); prov != want {
		t.Errorf("ProvenancePath() = %q, want %q", prov, want)
	}

	cfg.Output.ImagePath = "~/Pictures/wall.jpg"
	img, _ = cfg.ImagePath()
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "Pictures", "wall.jpg"); img != want {
		t.Errorf("ImagePath() = %q, want %q", img, want)
	}
	prov, _ = cfg.ProvenancePath()
	if want := filepath.Join(home, "Pictures", DefaultProvenanceName); prov != want {
		t.Errorf("ProvenancePath() = %q, want image directory", prov)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	cfg := Default()
	dir, err := cfg.CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("CacheDir() = %q, want %q", dir, want)
	}

	cfg.Cache.Dir = "/var/cache/wall"
	if dir, _ := cfg.CacheDir(); dir != "/var/cache/wall" {
		t.Errorf("CacheDir() = %q, want configured dir", dir)
	}
}

func TestLoadExamples(t *testing.T) {
	fromTOML, err := Load(filepath.Join("..", "..", "examples", "config.toml"))
	if err != nil {
		t.Fatalf("Load config.toml: %v", err)
	}
	def := Default()
	if !reflect.DeepEqual(fromTOML, def) {
		t.Errorf("examples/config.toml should match the defaults:\ngot  %+v\nwant %+v", fromTOML, def)
	}

	yml, err := Load(filepath.Join("..", "..", "examples", "config.yaml"))
	if err != nil {
		t.Fatalf("Load config.yaml: %v", err)
	}
	if yml.Display.FallbackWidth != 2560 || yml.Sources.Timeout.Std() != 45*time.Second {
		t.Errorf("yaml overrides not applied: %+v", yml)
	}
	if yml.Cache.Enabled || yml.Output.SetWallpaper || yml.Output.Quality != 85 {
		t.Errorf("yaml booleans not applied: cache=%v wallpaper=%v quality=%d",
			yml.Cache.Enabled, yml.Output.SetWallpaper, yml.Output.Quality)
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yaml", "# nothing set\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("empty yaml should load the defaults, got %+v", cfg)
	}
}
