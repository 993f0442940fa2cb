package scraper

import (
	"context"

	"github.com/jonathan/redflag/internal/extract"
	"github.com/jonathan/redflag/internal/fetch"
	"github.com/jonathan/redflag/internal/types"
)

// APIScraper calls a scraping provider that returns structured profile details.
type APIScraper struct {
	endpoint string
	token    string
	cfg      *config
}

// NewAPI creates an APIScraper posting to endpoint.
func NewAPI(endpoint, token string, opts ...Option) *APIScraper {
	return &APIScraper{
		endpoint: endpoint,
		token:    token,
		cfg:      newConfig(opts),
	}
}

type providerRequest struct {
	Usernames []string `json:"usernames"`
}

// Scrape implements Scraper.
func (s *APIScraper) Scrape(ctx context.Context, username string) types.ProfileMetadata {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()

	logger := s.cfg.logger.With("username", username)

	headers := map[string]string{"Accept": "application/json"}
	if s.token != "" {
		headers["Authorization"] = "Bearer " + s.token
	}

	result, err := fetch.PostJSON(ctx, s.endpoint, providerRequest{Usernames: []string{username}}, s.cfg.fetchOptions(headers))
	if err != nil {
		logger.WarnContext(ctx, "scraping provider request failed", "error", err)
		return extract.Placeholder(username)
	}

	details, err := extract.ParseDetails([]byte(result.Body))
	if err != nil {
		logger.WarnContext(ctx, "scraping provider returned unusable payload", "error", err)
		return extract.Placeholder(username)
	}

	profile := extract.FromDetails(username, details)
	if profile.Placeholder {
		logger.InfoContext(ctx, "provider reported a private or empty profile")
	}
	return profile
}
