package pipeline

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/dailywall/pkg/httputil"
	"github.com/matzehuels/dailywall/pkg/observability"
	"github.com/matzehuels/dailywall/pkg/panel"
	"github.com/matzehuels/dailywall/pkg/sink"
)

// Sink persists a finished wallpaper. *sink.Writer implements it.
type Sink interface {
	Write(ctx context.Context, img image.Image, prov sink.Provenance) (*sink.Output, error)
}

// Runner executes runs. It holds no per-run state.
type Runner struct {
	Client   *httputil.Client
	Renderer *panel.Renderer
	Sink     Sink
	Logger   *log.Logger
}

// NewRunner creates a runner. A nil client gets an uncached default
// client; a nil sink is only valid for dry runs.
func NewRunner(client *httputil.Client, renderer *panel.Renderer, s Sink, logger *log.Logger) *Runner {
	if client == nil {
		client = httputil.NewClient(nil)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Client:   client,
		Renderer: renderer,
		Sink:     s,
		Logger:   logger,
	}
}

// Execute runs every stage in order. Errors are wrapped with the name of
// the failing stage. A write error is returned together with the result,
// whose Output reports any files written before the failure.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if r.Renderer == nil {
		return nil, fmt.Errorf("invalid runner: no panel renderer")
	}
	if r.Sink == nil && !opts.DryRun {
		return nil, fmt.Errorf("invalid runner: no output sink")
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	logger := opts.Logger.With("run", shortID(opts.RunID))
	hooks := observability.Pipeline()
	hooks.OnRunStart(ctx, opts.RunID, opts.Width, opts.Height)
	start := time.Now()

	result, err := r.execute(ctx, opts, logger, hooks)
	hooks.OnRunComplete(ctx, opts.RunID, time.Since(start), err)
	if result != nil {
		result.Stats.TotalTime = time.Since(start)
	}
	return result, err
}

func (r *Runner) execute(ctx context.Context, opts Options, logger *log.Logger, hooks observability.PipelineHooks) (*Result, error) {
	result := &Result{RunID: opts.RunID}

	// Stage 1: Fetch
	var f *fetched
	d, err := stage(ctx, hooks, StageFetch, func() error {
		var err error
		f, err = r.fetch(ctx, opts, logger)
		return err
	})
	if err != nil {
		return nil, err
	}
	result.Stats.FetchTime = d
	logger.Info("fetched sources",
		"image", f.image.ImageURL,
		"rows", len(f.forecast.Rows),
		"duration", d)

	// Stage 2: Image
	d, err = stage(ctx, hooks, StageImage, func() error {
		return r.background(opts, f, result)
	})
	if err != nil {
		return nil, err
	}
	result.Stats.ImageTime = d
	logger.Info("fitted background",
		"canvas", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"rect", result.ImageRect,
		"duration", d)

	// Stage 3: Weather
	d, err = stage(ctx, hooks, StageWeather, func() error {
		return r.weather(opts, f, result)
	})
	if err != nil {
		return nil, err
	}
	result.Stats.WeatherTime = d
	logger.Info("added weather panel",
		"rows", result.Stats.ForecastRows,
		"at", result.WeatherAt,
		"duration", d)

	// Stage 4: Joke
	d, err = stage(ctx, hooks, StageJoke, func() error {
		return r.joke(opts, f, result)
	})
	if err != nil {
		return nil, err
	}
	result.Stats.JokeTime = d
	logger.Info("added joke panel",
		"lines", result.Stats.JokeLines,
		"at", result.JokeAt,
		"duration", d)

	if opts.DryRun {
		return result, nil
	}

	// Stage 5: Write
	d, err = stage(ctx, hooks, StageWrite, func() error {
		out, err := r.Sink.Write(ctx, result.Canvas, result.Provenance)
		result.Output = out
		if err != nil {
			return fmt.Errorf("write: %w", err)
		}
		return nil
	})
	if err != nil {
		return result, err
	}
	result.Stats.WriteTime = d
	logger.Info("wrote wallpaper",
		"image", result.Output.ImagePath,
		"bytes", result.Output.ImageBytes,
		"wallpaper", result.Output.WallpaperSet,
		"duration", d)

	return result, nil
}

// Stage names reported to observability hooks.
const (
	StageFetch   = "fetch"
	StageImage   = "image"
	StageWeather = "weather"
	StageJoke    = "joke"
	StageWrite   = "write"
)

// stage runs fn between the start and complete hooks and returns its duration.
func stage(ctx context.Context, hooks observability.PipelineHooks, name string, fn func() error) (time.Duration, error) {
	hooks.OnStageStart(ctx, name)
	start := time.Now()
	err := fn()
	d := time.Since(start)
	hooks.OnStageComplete(ctx, name, d, err)
	return d, err
}

// shortID trims a run id to the first block of a UUID for log lines.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
