package scraper

import (
	"context"
	"net/url"
	"strings"

	"github.com/jonathan/redflag/internal/extract"
	"github.com/jonathan/redflag/internal/fetch"
	"github.com/jonathan/redflag/internal/types"
)

// DefaultProfileBaseURL is where public profile pages are served.
const DefaultProfileBaseURL = "https://www.instagram.com"

// HTMLScraper reads counts and bio from the public profile page.
type HTMLScraper struct {
	baseURL string
	cfg     *config
}

// NewHTML creates an HTMLScraper for profile pages under baseURL.
func NewHTML(baseURL string, opts ...Option) *HTMLScraper {
	return &HTMLScraper{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cfg:     newConfig(opts),
	}
}

// Scrape implements Scraper.
func (s *HTMLScraper) Scrape(ctx context.Context, username string) types.ProfileMetadata {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()

	pageURL := s.baseURL + "/" + url.PathEscape(username) + "/"
	logger := s.cfg.logger.With("username", username, "url", pageURL)

	var page string
	result, err := fetch.URL(ctx, pageURL, s.cfg.fetchOptions(map[string]string{
		"Accept":          "text/html,application/xhtml+xml",
		"Accept-Language": "en-US,en;q=0.9",
	}))
	if err != nil {
		logger.WarnContext(ctx, "profile page fetch failed", "error", err)
	} else {
		page = result.Body
	}

	if s.cfg.browser != nil && !extract.HasDescription(page) {
		rendered, err := s.cfg.browser(ctx, pageURL, s.cfg.timeout)
		if err != nil {
			logger.WarnContext(ctx, "browser fallback failed", "error", err)
		} else {
			page = rendered
		}
	}

	if page == "" {
		return extract.Placeholder(username)
	}

	profile := extract.FromHTML(username, page)
	if profile.Placeholder {
		logger.InfoContext(ctx, "profile page carried no usable counts")
	}
	return profile
}
