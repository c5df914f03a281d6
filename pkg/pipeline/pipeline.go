// Package pipeline composes a wallpaper from its sources.
//
// A run is strictly sequential and aborts on the first error; nothing is
// written unless every stage succeeds:
//
//  1. Fetch: download a concept art image, scrape the forecast and the joke
//  2. Image: fit the image onto the canvas
//  3. Weather: render the weather panel and overlay it at the top-right corner
//  4. Joke: render the joke panel and overlay it flush right directly below
//     the weather panel
//  5. Write: encode the canvas and write it with its provenance file
//
// # Usage
//
//	runner := pipeline.NewRunner(client, renderer, writer, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Width:  1920,
//	    Height: 1080,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(result.Provenance)
package pipeline

import (
	"fmt"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dailywall/pkg/cache"
	"github.com/matzehuels/dailywall/pkg/panel"
	"github.com/matzehuels/dailywall/pkg/sink"
	"github.com/matzehuels/dailywall/pkg/sources"
)

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options configures a single run.
type Options struct {
	// Canvas size, normally the resolved display size.
	Width  int
	Height int

	CatalogURL string
	WeatherURL string
	JokeURL    string

	// SkipGroups is the number of leading catalog groups to ignore.
	SkipGroups int

	// Seed makes image selection reproducible; zero picks a fresh seed.
	Seed uint64

	// PageTTL is the cache lifetime of catalog and category pages.
	PageTTL time.Duration

	// DryRun composes the wallpaper without writing it.
	DryRun bool

	// RunID identifies the run in logs. Generated when empty.
	RunID string

	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d must be positive", o.Width, o.Height)
	}
	if o.SkipGroups < 0 {
		return fmt.Errorf("skip groups %d is negative", o.SkipGroups)
	}
	if o.CatalogURL == "" {
		o.CatalogURL = sources.DefaultCatalogURL
	}
	if o.WeatherURL == "" {
		o.WeatherURL = sources.DefaultWeatherURL
	}
	if o.JokeURL == "" {
		o.JokeURL = sources.DefaultJokeURL
	}
	if o.PageTTL == 0 {
		o.PageTTL = cache.TTLPage
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result - Run Outputs
// =============================================================================

// Result contains the outputs of a run.
type Result struct {
	RunID string

	// Canvas is the finished wallpaper.
	Canvas *image.RGBA

	// ImageRect is where the background image landed on the canvas.
	ImageRect image.Rectangle

	// ImageURL is the direct link to the background image file.
	ImageURL string

	Weather *panel.Panel
	Joke    *panel.Panel

	// Placements are the panel origins on the canvas.
	WeatherAt image.Point
	JokeAt    image.Point

	Provenance sink.Provenance

	// Output is nil for dry runs.
	Output *sink.Output

	Stats Stats
}

// Stats contains run timing and size information.
type Stats struct {
	ForecastRows int
	JokeLines    int
	FetchTime    time.Duration
	ImageTime    time.Duration
	WeatherTime  time.Duration
	JokeTime     time.Duration
	WriteTime    time.Duration
	TotalTime    time.Duration
}
