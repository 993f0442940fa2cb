package analysis

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/jonathan/redflag/internal/llm"
	"github.com/jonathan/redflag/internal/types"
)

// fakeClient answers GenerateContent per tier.
type fakeClient struct {
	mu      sync.Mutex
	prompts map[llm.ModelTier]string
	respond func(ctx context.Context, tier llm.ModelTier) (string, error)
}

func (f *fakeClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.mu.Lock()
	if f.prompts == nil {
		f.prompts = make(map[llm.ModelTier]string)
	}
	f.prompts[tier] = prompt
	f.mu.Unlock()
	return f.respond(ctx, tier)
}

func (f *fakeClient) GetModel(tier llm.ModelTier) string { return "fake-" + string(tier) }

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) prompt(tier llm.ModelTier) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prompts[tier]
}

// staticResponses returns fixed text for each tier.
func staticResponses(flag, opener string) func(context.Context, llm.ModelTier) (string, error) {
	return func(_ context.Context, tier llm.ModelTier) (string, error) {
		if tier == llm.TierStandard {
			return flag, nil
		}
		return opener, nil
	}
}

type fakeScraper struct {
	profile types.ProfileMetadata
	calls   []string
}

func (f *fakeScraper) Scrape(_ context.Context, username string) types.ProfileMetadata {
	f.calls = append(f.calls, username)
	p := f.profile
	p.Username = username
	return p
}

type fakeRecorder struct {
	recorded []*types.AnalysisResult
}

func (f *fakeRecorder) Record(_ context.Context, result *types.AnalysisResult) {
	f.recorded = append(f.recorded, result)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
