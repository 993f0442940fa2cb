package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jonathan/redflag/internal/analysis"
	"github.com/jonathan/redflag/internal/config"
	"github.com/jonathan/redflag/internal/llm"
	"github.com/jonathan/redflag/internal/scraper"
	"github.com/spf13/cobra"
)

// resolveConfig layers the config file (if any) under the environment and
// fills the rest from defaults.
func resolveConfig(path string, getenv func(string) string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	cfg, err := cfg.FromEnv(getenv)
	if err != nil {
		return config.Config{}, err
	}
	return cfg.MergeWithDefaults(config.Defaults()), nil
}

// loadSettings resolves configuration and applies the root flags that were set.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	cfg, err := resolveConfig(configPath, os.Getenv)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("api-key") {
		cfg.APIKey = apiKey
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = databaseURL
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser = useBrowser
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if cfg.APIKey == "" {
		return config.Config{}, fmt.Errorf("API key is required (set --api-key or GEMINI_API_KEY)")
	}
	return cfg, nil
}

// newLogger returns a JSON logger for the server or a text logger for the CLI.
func newLogger(out io.Writer, debug, jsonFormat bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}
	if jsonFormat {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

// newService builds the scraper, model client and analysis service.
// The caller owns the returned client and must close it.
func newService(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder analysis.Recorder) (*analysis.Service, llm.Client, error) {
	s, err := scraper.New(scraper.Settings{
		Mode:       scraper.Mode(cfg.ScraperMode),
		APIURL:     cfg.ScraperAPIURL,
		APIToken:   cfg.ScraperAPIToken,
		Timeout:    cfg.ScrapeTimeoutDuration(),
		UseBrowser: cfg.UseBrowser,
	}, scraper.WithLogger(logger))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create scraper: %w", err)
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	analyzer := analysis.NewAnalyzer(client,
		analysis.WithGenerationTimeout(cfg.GenerationTimeoutDuration()),
		analysis.WithAnalyzerLogger(logger))

	return analysis.NewService(s, analyzer, recorder, logger), client, nil
}
