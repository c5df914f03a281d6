package pipeline

import (
	"context"
	"fmt"
	"image"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dailywall/pkg/compose"
	"github.com/matzehuels/dailywall/pkg/sources"
)

// fetched holds the raw results of the three sources.
type fetched struct {
	image    *sources.ImageResult
	forecast *sources.WeatherResult
	joke     *sources.JokeResult
}

// fetch retrieves the concept art image, the forecast and the joke, in
// that order. Nothing is drawn until all three have arrived.
func (r *Runner) fetch(ctx context.Context, opts Options, logger *log.Logger) (*fetched, error) {
	img, err := (&sources.ImageSource{
		Client:     r.Client,
		CatalogURL: opts.CatalogURL,
		SkipGroups: opts.SkipGroups,
		PageTTL:    opts.PageTTL,
		Rand:       sources.NewRand(opts.Seed),
		Logger:     logger,
	}).Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}

	forecast, err := (&sources.WeatherSource{
		Client:  r.Client,
		URL:     opts.WeatherURL,
		MaxRows: r.Renderer.Config.Weather.MaxRows,
		Logger:  logger,
	}).Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch weather: %w", err)
	}

	joke, err := (&sources.JokeSource{Client: r.Client, URL: opts.JokeURL}).Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch joke: %w", err)
	}
	logger.Debug("fetched joke", "chars", len(joke.Text))

	return &fetched{image: img, forecast: forecast, joke: joke}, nil
}

// background fits the fetched image onto a new canvas.
func (r *Runner) background(opts Options, f *fetched, result *Result) error {
	canvas, err := compose.NewCanvas(opts.Width, opts.Height)
	if err != nil {
		return fmt.Errorf("fit image: %w", err)
	}
	rect, err := compose.FitInto(canvas, f.image.Image)
	if err != nil {
		return fmt.Errorf("fit image: %w", err)
	}

	result.Canvas = canvas
	result.ImageRect = rect
	result.ImageURL = f.image.ImageURL
	result.Provenance.Image = f.image.SourceURL
	return nil
}

// weather overlays the weather panel at the top-right corner of the canvas.
func (r *Runner) weather(opts Options, f *fetched, result *Result) error {
	p, err := r.Renderer.RenderWeather(f.forecast.Rows)
	if err != nil {
		return fmt.Errorf("render weather: %w", err)
	}
	at := image.Pt(opts.Width-p.Bounds().Dx(), 0)
	if err := compose.Overlay(result.Canvas, p.Image, at); err != nil {
		return fmt.Errorf("overlay weather: %w", err)
	}

	result.Weather = p
	result.WeatherAt = at
	result.Stats.ForecastRows = p.Rows
	result.Provenance.Weather = f.forecast.SourceURL
	return nil
}

// joke overlays the joke panel flush right directly below the weather
// panel.
func (r *Runner) joke(opts Options, f *fetched, result *Result) error {
	p, err := r.Renderer.RenderJoke(f.joke.Text)
	if err != nil {
		return fmt.Errorf("render joke: %w", err)
	}
	at := image.Pt(opts.Width-p.Bounds().Dx(), result.Weather.Bounds().Dy())
	if err := compose.Overlay(result.Canvas, p.Image, at); err != nil {
		return fmt.Errorf("overlay joke: %w", err)
	}

	result.Joke = p
	result.JokeAt = at
	result.Stats.JokeLines = p.Rows
	result.Provenance.Joke = f.joke.SourceURL
	return nil
}
