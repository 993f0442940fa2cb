package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/redflag/internal/extract"
	"github.com/jonathan/redflag/internal/types"
	"github.com/stretchr/testify/assert"
)

func sampleResult() *types.AnalysisResult {
	return &types.AnalysisResult{
		FlagJudgment: types.FlagJudgment{
			Flag:       types.FlagRed,
			Reasoning:  "High ratio",
			RedFlags:   []string{"High ratio", "No posts"},
			GreenFlags: []string{types.NoGreenFlags},
		},
		MessageOpener: "Love the beach pics!",
		Profile: types.ProfileMetadata{
			Username:  "beachbum",
			Followers: 12,
			Following: 2000,
			Posts:     0,
			Bio:       "Sun & sand",
			Captions:  []string{"a", "b", "c", "d", "e", "f", "g"},
		},
	}
}

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(sampleResult())
	output := buf.String()

	assert.Contains(t, output, "PROFILE @beachbum")
	assert.Contains(t, output, "Following: 2000")
	assert.Contains(t, output, "Sun & sand")
	assert.Contains(t, output, "... and 2 more")
	assert.Contains(t, output, "VERDICT: RED FLAG")
	assert.Contains(t, output, "✗ No posts")
	assert.Contains(t, output, "✓ "+types.NoGreenFlags)
	assert.Contains(t, output, "Opener: Love the beach pics!")
}

func TestPrintAnalysis_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(nil)
	p.PrintProfile(nil)

	assert.Empty(t, buf.String())
}

func TestPrintProfile_Placeholder(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := extract.Placeholder("ghost")
	p.PrintProfile(&profile)

	assert.Contains(t, buf.String(), "PROFILE @ghost (UNAVAILABLE)")
	assert.NotContains(t, buf.String(), "Recent captions")
}

func TestPrintBox_LinesFitWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := sampleResult()
	result.Reasoning = strings.Repeat("lots of following and very few posts ", 6)
	result.Profile.Bio = "🌴🌊☀️ " + strings.Repeat("x", 120)

	p.PrintAnalysis(result)

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
	assert.Contains(t, buf.String(), "very few posts")
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"short"}, wrap("short", 10))
	assert.Equal(t, []string{"aaa bbb", "  ccc"}, wrap("aaa bbb ccc", 8))
	assert.Equal(t, []string{"abcde", "fghij"}, wrap("abcdefghij", 5))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
}
