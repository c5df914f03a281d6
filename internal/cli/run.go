package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dailywall/pkg/config"
	"github.com/matzehuels/dailywall/pkg/panel"
	"github.com/matzehuels/dailywall/pkg/pipeline"
	"github.com/matzehuels/dailywall/pkg/sink"
)

// runFlags holds command-line overrides for a run.
type runFlags struct {
	width       int
	height      int
	output      string
	provenance  string
	seed        uint64
	noWallpaper bool
	noCache     bool
	dryRun      bool
}

// runCommand creates the run command that composes and installs a wallpaper.
func (c *CLI) runCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compose today's wallpaper and set it as the desktop background",
		Long: `Compose today's wallpaper and set it as the desktop background.

A random concept art image is fitted to the display, then a weather panel and
a joke panel are drawn over its top-right corner. The result is written as a
JPEG together with BackgroundInfo.txt, which lists the page each part came
from.

Catalog pages are cached locally; the forecast and the joke are always fetched
fresh.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWallpaper(cmd.Context(), flags)
		},
	}

	cmd.Flags().IntVar(&flags.width, "width", 0, "canvas width (default: detect display)")
	cmd.Flags().IntVar(&flags.height, "height", 0, "canvas height (default: detect display)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output image path")
	cmd.Flags().StringVar(&flags.provenance, "info", "", "provenance file path (default: BackgroundInfo.txt next to the image)")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "random seed for image selection (0: random)")
	cmd.Flags().BoolVar(&flags.noWallpaper, "no-wallpaper", false, "write files without changing the desktop background")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the page cache")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "compose the wallpaper without writing anything")

	return cmd
}

// applyRunFlags overrides configuration values with explicitly set flags.
func applyRunFlags(cfg *config.Config, flags runFlags) {
	if flags.output != "" {
		cfg.Output.ImagePath = flags.output
	}
	if flags.provenance != "" {
		cfg.Output.ProvenancePath = flags.provenance
	}
	if flags.seed != 0 {
		cfg.Sources.Seed = flags.seed
	}
	if flags.noWallpaper {
		cfg.Output.SetWallpaper = false
	}
}

// runWallpaper wires the configuration into a pipeline run and reports
// the result.
func (c *CLI) runWallpaper(ctx context.Context, flags runFlags) error {
	logger := loggerFromContext(ctx)

	if err := checkSizeFlags(flags.width, flags.height); err != nil {
		return err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cfg, flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	screen := c.resolveDisplay(ctx, cfg, flags.width, flags.height)
	logger.Debug("resolved display", "size", screen.Size, "origin", screen.Origin)

	pages, err := newCache(ctx, cfg, flags.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer pages.Close()

	ts, err := c.newTypesetter(cfg)
	if err != nil {
		return err
	}
	defer ts.Close()

	panelCfg, err := cfg.PanelConfig()
	if err != nil {
		return err
	}

	writer, err := newWriter(cfg)
	if err != nil {
		return err
	}
	writer.Logger = logger

	runner := pipeline.NewRunner(c.newClient(cfg, pages), panel.NewRenderer(panelCfg, ts), writer, logger)
	opts := pipeline.Options{
		Width:      screen.Size.Width,
		Height:     screen.Size.Height,
		CatalogURL: cfg.Sources.CatalogURL,
		WeatherURL: cfg.Sources.WeatherURL,
		JokeURL:    cfg.Sources.JokeURL,
		SkipGroups: cfg.Sources.SkipGroups,
		Seed:       cfg.Sources.Seed,
		PageTTL:    cfg.Cache.TTL.Std(),
		DryRun:     flags.dryRun,
		Logger:     logger,
	}

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Composing wallpaper...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Run failed")
		if result != nil && result.Output != nil {
			printFile(result.Output.ImagePath)
			printFile(result.Output.ProvenancePath)
		}
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done("Composed wallpaper")

	printRunResult(result, formatSize(screen.Size, screen.Origin))
	return nil
}

// newWriter builds the output sink from the configuration.
func newWriter(cfg *config.Config) (*sink.Writer, error) {
	imagePath, err := cfg.ImagePath()
	if err != nil {
		return nil, fmt.Errorf("resolve image path: %w", err)
	}
	provenancePath, err := cfg.ProvenancePath()
	if err != nil {
		return nil, fmt.Errorf("resolve provenance path: %w", err)
	}
	w := &sink.Writer{
		ImagePath:      imagePath,
		ProvenancePath: provenancePath,
		Quality:        cfg.Output.Quality,
	}
	if cfg.Output.SetWallpaper {
		w.Wallpaper = sink.System()
	}
	return w, nil
}
