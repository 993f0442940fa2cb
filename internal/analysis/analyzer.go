// Package analysis runs the red/green flag judgment and the conversation
// opener for a profile and merges them into one result.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/redflag/internal/llm"
	"github.com/jonathan/redflag/internal/parsing"
	"github.com/jonathan/redflag/internal/prompts"
	"github.com/jonathan/redflag/internal/types"
)

// DefaultGenerationTimeout bounds each of the two model calls.
const DefaultGenerationTimeout = 30 * time.Second

// ErrAnalysisFailed is the single failure callers see. The underlying cause
// is wrapped for logging but never shown to end users.
var ErrAnalysisFailed = errors.New("failed to analyze profile")

// errEmptyOpener reports a completion that was blank after cleanup.
var errEmptyOpener = errors.New("empty message opener")

// Analyzer turns a profile into an AnalysisResult using a text-generation client.
type Analyzer struct {
	client  llm.Client
	timeout time.Duration
	logger  *slog.Logger
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithGenerationTimeout sets the timeout applied to each model call.
func WithGenerationTimeout(d time.Duration) AnalyzerOption {
	return func(a *Analyzer) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithAnalyzerLogger sets a custom logger.
func WithAnalyzerLogger(logger *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) { a.logger = logger }
}

// NewAnalyzer creates an Analyzer backed by client.
func NewAnalyzer(client llm.Client, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		client:  client,
		timeout: DefaultGenerationTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze requests the flag judgment and the opener concurrently. Either
// both succeed or Analyze returns ErrAnalysisFailed with no partial result.
func (a *Analyzer) Analyze(ctx context.Context, profile types.ProfileMetadata) (*types.AnalysisResult, error) {
	data := promptData(profile)

	flagPrompt, err := prompts.Render(prompts.AnalysisFile, prompts.KeyFlagJudgment, data)
	if err != nil {
		return nil, a.fail(ctx, profile, fmt.Errorf("render flag prompt: %w", err))
	}
	openerPrompt, err := prompts.Render(prompts.AnalysisFile, prompts.KeyMessageOpener, data)
	if err != nil {
		return nil, a.fail(ctx, profile, fmt.Errorf("render opener prompt: %w", err))
	}

	var (
		judgment types.FlagJudgment
		opener   string
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		text, err := a.generate(gCtx, flagPrompt, llm.TierStandard)
		if err != nil {
			return fmt.Errorf("flag judgment: %w", err)
		}
		judgment, err = parsing.ParseFlagResponse(text)
		if err != nil {
			return fmt.Errorf("flag judgment: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		text, err := a.generate(gCtx, openerPrompt, llm.TierLite)
		if err != nil {
			return fmt.Errorf("message opener: %w", err)
		}
		opener = parsing.CleanOpener(text)
		if opener == "" {
			return fmt.Errorf("message opener: %w", errEmptyOpener)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, a.fail(ctx, profile, err)
	}

	return &types.AnalysisResult{
		FlagJudgment:  judgment,
		MessageOpener: opener,
		Profile:       profile,
	}, nil
}

func (a *Analyzer) generate(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	text, err := a.client.GenerateContent(ctx, prompt, tier)
	a.logger.DebugContext(ctx, "generation finished",
		"tier", tier, "model", a.client.GetModel(tier), "duration", time.Since(start), "ok", err == nil)
	return text, err
}

func (a *Analyzer) fail(ctx context.Context, profile types.ProfileMetadata, cause error) error {
	a.logger.ErrorContext(ctx, "profile analysis failed", "username", profile.Username, "error", cause)
	return fmt.Errorf("%w: %w", ErrAnalysisFailed, cause)
}

// promptData renders the profile fields used by both prompts.
func promptData(p types.ProfileMetadata) map[string]string {
	captions := "(none)"
	if len(p.Captions) > 0 {
		captions = "- " + strings.Join(p.Captions, "\n- ")
	}
	return map[string]string{
		"Username":  p.Username,
		"Followers": strconv.Itoa(p.Followers),
		"Following": strconv.Itoa(p.Following),
		"Posts":     strconv.Itoa(p.Posts),
		"Bio":       p.Bio,
		"Captions":  captions,
	}
}
