package analysis

import (
	"context"
	"log/slog"

	"github.com/jonathan/redflag/internal/scraper"
	"github.com/jonathan/redflag/internal/types"
)

// Recorder accepts finished analyses for best-effort persistence. Record must
// not block and must not report failures to the caller.
type Recorder interface {
	Record(ctx context.Context, result *types.AnalysisResult)
}

// Service is the unit exposed over the HTTP boundary: scrape, analyze, then
// hand the result to the recorder.
type Service struct {
	scraper  scraper.Scraper
	analyzer *Analyzer
	recorder Recorder
	logger   *slog.Logger
}

// NewService wires a Service. recorder may be nil.
func NewService(s scraper.Scraper, a *Analyzer, recorder Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{scraper: s, analyzer: a, recorder: recorder, logger: logger}
}

// AnalyzeUsername normalizes raw, scrapes the profile and analyzes it.
// It returns scraper.ErrInvalidUsername for unusable input and
// ErrAnalysisFailed for any generation failure.
func (s *Service) AnalyzeUsername(ctx context.Context, raw string) (*types.AnalysisResult, error) {
	username, err := scraper.NormalizeUsername(raw)
	if err != nil {
		return nil, err
	}

	profile := s.scraper.Scrape(ctx, username)
	s.logger.InfoContext(ctx, "profile scraped",
		"username", username,
		"followers", profile.Followers,
		"following", profile.Following,
		"posts", profile.Posts,
		"placeholder", profile.Placeholder)

	result, err := s.analyzer.Analyze(ctx, profile)
	if err != nil {
		return nil, err
	}

	// Placeholder profiles carry nothing worth keeping.
	if s.recorder != nil && !profile.Placeholder {
		s.recorder.Record(ctx, result)
	}
	return result, nil
}
