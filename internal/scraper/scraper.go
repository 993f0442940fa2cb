// Package scraper obtains Instagram profile metadata from either the public
// profile page or a third-party scraping API.
//
// Scrapers never return errors: any failure yields extract.Placeholder so the
// analysis can still run on the sentinel profile.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonathan/redflag/internal/fetch"
	"github.com/jonathan/redflag/internal/types"
)

// DefaultTimeout bounds a single scrape, including any browser fallback.
const DefaultTimeout = 15 * time.Second

// Mode selects the scraping backend.
type Mode string

const (
	// ModeHTML scrapes the public profile page.
	ModeHTML Mode = "html"
	// ModeAPI calls a structured scraping provider.
	ModeAPI Mode = "api"
)

// Scraper fetches profile metadata for a normalized username.
type Scraper interface {
	Scrape(ctx context.Context, username string) types.ProfileMetadata
}

// Option configures a scraper.
type Option func(*config)

type config struct {
	timeout    time.Duration
	httpClient *http.Client
	browser    fetch.BrowserRenderer
	logger     *slog.Logger
}

// WithTimeout sets the per-scrape timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) { c.httpClient = client }
}

// WithBrowser enables a headless-browser fallback for pages served without
// profile meta tags. Only the HTML scraper uses it.
func WithBrowser(renderer fetch.BrowserRenderer) Option {
	return func(c *config) { c.browser = renderer }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

func newConfig(opts []Option) *config {
	cfg := &config{timeout: DefaultTimeout, logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *config) fetchOptions(headers map[string]string) *fetch.Options {
	opts := fetch.DefaultOptions()
	opts.Timeout = c.timeout
	opts.Client = c.httpClient
	opts.Headers = headers
	return opts
}

// Settings selects and configures a scraper.
type Settings struct {
	Mode       Mode
	APIURL     string
	APIToken   string
	Timeout    time.Duration
	UseBrowser bool
}

// New builds the scraper selected by s.Mode.
func New(s Settings, opts ...Option) (Scraper, error) {
	opts = append([]Option{WithTimeout(s.Timeout)}, opts...)
	if s.UseBrowser {
		opts = append(opts, WithBrowser(fetch.WithBrowser))
	}

	switch s.Mode {
	case ModeHTML, "":
		return NewHTML(DefaultProfileBaseURL, opts...), nil
	case ModeAPI:
		if s.APIURL == "" {
			return nil, fmt.Errorf("scraper mode %q requires an API URL", s.Mode)
		}
		return NewAPI(s.APIURL, s.APIToken, opts...), nil
	default:
		return nil, fmt.Errorf("unknown scraper mode %q", s.Mode)
	}
}
