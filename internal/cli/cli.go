package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dailywall/pkg/buildinfo"
	"github.com/matzehuels/dailywall/pkg/cache"
	"github.com/matzehuels/dailywall/pkg/config"
	"github.com/matzehuels/dailywall/pkg/display"
	"github.com/matzehuels/dailywall/pkg/errors"
	"github.com/matzehuels/dailywall/pkg/fonts"
	"github.com/matzehuels/dailywall/pkg/httputil"
	"github.com/matzehuels/dailywall/pkg/panel"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "dailywall"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is bound to the persistent --config flag.
	configPath string

	// detect reports the primary display size. Replaced in tests.
	detect display.Provider
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		detect: display.System(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Dailywall composes a daily desktop wallpaper",
		Long: `Dailywall composes a desktop wallpaper from a random piece of concept art,
the hourly weather forecast and the joke of the day, then installs it as the
desktop background.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: ~/.config/dailywall/config.toml)")

	// Register all subcommands
	root.AddCommand(c.runCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.displayCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

// loadConfig reads the configuration selected by --config.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// newCache opens the page cache described by cfg: Redis when a URL is
// configured, otherwise the file cache.
func newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache || !cfg.Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.RedisURL != "" {
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newClient creates the HTTP client shared by all sources.
func (c *CLI) newClient(cfg *config.Config, pages cache.Cache) *httputil.Client {
	ua := cfg.Sources.UserAgent
	if ua == "" {
		ua = buildinfo.UserAgent()
	}
	return httputil.NewClient(pages,
		httputil.WithTimeout(cfg.Sources.Timeout.Std()),
		httputil.WithUserAgent(ua),
		httputil.WithLogger(c.Logger),
	)
}

// newTypesetter loads the configured panel font.
func (c *CLI) newTypesetter(cfg *config.Config) (*panel.FontTypesetter, error) {
	f, origin, err := fonts.Resolve(cfg.Font.Path, cfg.Font.Name)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded font", "font", origin)
	return panel.NewFontTypesetter(f), nil
}

// resolveDisplay determines the canvas size from flags, config and the
// primary display.
func (c *CLI) resolveDisplay(ctx context.Context, cfg *config.Config, width, height int) display.Resolved {
	override := display.Size{Width: cfg.Display.Width, Height: cfg.Display.Height}
	if width > 0 && height > 0 {
		override = display.Size{Width: width, Height: height}
	}
	fallback := display.Size{Width: cfg.Display.FallbackWidth, Height: cfg.Display.FallbackHeight}
	return display.Resolve(ctx, override, fallback, c.detect, c.Logger)
}

// checkSizeFlags rejects a --width without --height and vice versa, as
// config validation does for [display].
func checkSizeFlags(width, height int) error {
	if width < 0 || height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "--width and --height must not be negative")
	}
	if (width == 0) != (height == 0) {
		return errors.New(errors.ErrCodeInvalidInput, "--width and --height must be set together")
	}
	return nil
}

func formatSize(s display.Size, origin display.Origin) string {
	return fmt.Sprintf("%s (%s)", s, origin)
}
