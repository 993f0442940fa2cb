// Package config provides configuration loading and validation for the service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Scraper modes accepted in ScraperMode.
const (
	ScraperModeHTML = "html"
	ScraperModeAPI  = "api"
)

// DefaultCORSOrigins are the browser origins allowed when none are configured.
var DefaultCORSOrigins = []string{
	"http://localhost:8080",
	"https://redflagdetector.vercel.app",
	"https://instasus.vercel.app",
}

// Config represents the service configuration. It can be loaded from a JSON
// file and overlaid with environment variables.
type Config struct {
	// Collaborators
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty disables persistence

	// HTTP
	Port        int      `json:"port,omitempty"`
	CORSOrigins []string `json:"cors_origins,omitempty"`

	// Scraping
	ScraperMode     string `json:"scraper_mode,omitempty"`      // "html" or "api"
	ScraperAPIURL   string `json:"scraper_api_url,omitempty"`   // Structured scraping endpoint (api mode)
	ScraperAPIToken string `json:"scraper_api_token,omitempty"` // Bearer token for the scraping endpoint
	UseBrowser      bool   `json:"use_browser,omitempty"`       // Fall back to a headless browser when the page lacks metadata

	// Timeouts, as Go durations ("15s") or whole seconds ("15")
	ScrapeTimeout     string `json:"scrape_timeout,omitempty"`
	GenerationTimeout string `json:"generation_timeout,omitempty"`

	Verbose bool `json:"verbose,omitempty"` // Debug logging
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Port:              3000,
		CORSOrigins:       append([]string(nil), DefaultCORSOrigins...),
		ScraperMode:       ScraperModeHTML,
		ScrapeTimeout:     "15s",
		GenerationTimeout: "30s",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a copy of c with every set environment variable applied on top.
func (c *Config) FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	result := *c

	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	setString("GEMINI_API_KEY", &result.APIKey)
	setString("DATABASE_URL", &result.DatabaseURL)
	setString("SCRAPER_MODE", &result.ScraperMode)
	setString("SCRAPER_API_URL", &result.ScraperAPIURL)
	setString("SCRAPER_API_TOKEN", &result.ScraperAPIToken)
	setString("SCRAPE_TIMEOUT", &result.ScrapeTimeout)
	setString("GENERATION_TIMEOUT", &result.GenerationTimeout)

	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config error: invalid PORT %q", v)
		}
		result.Port = port
	}
	if v := strings.TrimSpace(getenv("USE_BROWSER")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("config error: invalid USE_BROWSER %q", v)
		}
		result.UseBrowser = b
	}
	if v := strings.TrimSpace(getenv("CORS_ORIGINS")); v != "" {
		result.CORSOrigins = splitList(v)
	}

	return result, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks that the configuration has valid values.
// The API key is not required here since the analyze and serve commands
// report it missing with their own message.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	switch c.ScraperMode {
	case "", ScraperModeHTML:
	case ScraperModeAPI:
		if c.ScraperAPIURL == "" {
			return fmt.Errorf("config error: 'scraper_api_url' is required in api mode")
		}
	default:
		return fmt.Errorf("config error: unknown 'scraper_mode' %q", c.ScraperMode)
	}

	if _, err := parseTimeout(c.ScrapeTimeout); err != nil {
		return fmt.Errorf("config error: 'scrape_timeout': %w", err)
	}
	if _, err := parseTimeout(c.GenerationTimeout); err != nil {
		return fmt.Errorf("config error: 'generation_timeout': %w", err)
	}

	return nil
}

// ScrapeTimeoutDuration returns the scrape timeout, or 0 when unset or invalid.
func (c *Config) ScrapeTimeoutDuration() time.Duration {
	d, _ := parseTimeout(c.ScrapeTimeout)
	return d
}

// GenerationTimeoutDuration returns the generation timeout, or 0 when unset or invalid.
func (c *Config) GenerationTimeoutDuration() time.Duration {
	d, _ := parseTimeout(c.GenerationTimeout)
	return d
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	if secs, err := strconv.Atoi(s); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("must be non-negative, got %q", s)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("must be non-negative, got %q", s)
	}
	return d, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ScraperMode == "" {
		result.ScraperMode = defaults.ScraperMode
	}
	if result.ScraperAPIURL == "" {
		result.ScraperAPIURL = defaults.ScraperAPIURL
	}
	if result.ScraperAPIToken == "" {
		result.ScraperAPIToken = defaults.ScraperAPIToken
	}
	if result.ScrapeTimeout == "" {
		result.ScrapeTimeout = defaults.ScrapeTimeout
	}
	if result.GenerationTimeout == "" {
		result.GenerationTimeout = defaults.GenerationTimeout
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if len(result.CORSOrigins) == 0 {
		result.CORSOrigins = append([]string(nil), defaults.CORSOrigins...)
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (flags and env always win for bools)

	return result
}
