package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/titlewatch/catalog"
	"github.com/s0up4200/titlewatch/config"
	"github.com/s0up4200/titlewatch/filter"
	"github.com/s0up4200/titlewatch/ratelimit"
	"github.com/s0up4200/titlewatch/titles"
	"github.com/s0up4200/titlewatch/view"
)

// skipInitAnnotation marks commands that run without configuration
const skipInitAnnotation = "titlewatch/skip-init"

var (
	cfgFile       string
	cfg           *config.Config
	logger        zerolog.Logger
	catalogClient *catalog.Client
	aggregator    *titles.Aggregator
	dualLoader    *titles.DualLoader
	presets       *filter.Presets
	formatter     view.Formatter
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "titlewatch",
	Short: "Browse popular movies and TV shows from the Watchmode catalog",
	Long: `titlewatch lists movies and TV series from the Watchmode catalog, enriched
with their full details, and shows the details of a single title.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Interrupting the process cancels any load in flight.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(detailsCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	if _, skip := cmd.Annotations[skipInitAnnotation]; skip {
		logger = setupLogger(config.LoggingConfig{Level: "info", Format: "console", Color: true})
		return nil
	}

	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create catalog client
	catalogClient, err = catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, logger,
		catalog.WithTimeout(cfg.Catalog.Timeout),
		catalog.WithUserAgent("titlewatch/"+appVersion),
	)
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	aggregator = titles.NewAggregator(catalogClient, logger,
		titles.WithRateLimiter(ratelimit.New("catalog", cfg.Catalog.RateLimit)),
		titles.WithConcurrency(cfg.Catalog.Concurrency),
	)
	dualLoader = titles.NewDualLoader(aggregator, logger)

	presets = filter.NewPresets(nil)
	if err := presets.RegisterAll(cfg.Filter.PresetExpressions()); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	formatter = view.NewConsoleFormatter()

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only on a terminal
	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
