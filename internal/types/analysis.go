package types

import "strings"

// Flag is the red/green verdict of a judgment.
type Flag string

const (
	// FlagRed marks a profile with multiple clear warning signs.
	FlagRed Flag = "red"
	// FlagGreen is the default verdict.
	FlagGreen Flag = "green"
)

// Default list entries used when the model response names no flags.
const (
	NoRedFlags   = "No red flags detected"
	NoGreenFlags = "No green flags detected"
)

// FlagJudgment is the typed form of the model's free-text assessment.
// RedFlags and GreenFlags are never empty.
type FlagJudgment struct {
	Flag       Flag     `json:"flag"`
	Reasoning  string   `json:"reasoning"`
	RedFlags   []string `json:"redFlags"`
	GreenFlags []string `json:"greenFlags"`
}

// KeyPoints returns the reasoning split back into its individual lines.
func (j FlagJudgment) KeyPoints() []string {
	if j.Reasoning == "" {
		return nil
	}
	return strings.Split(j.Reasoning, "\n")
}

// AnalysisResult is a judgment together with the generated opener and the
// profile it was derived from.
type AnalysisResult struct {
	FlagJudgment
	MessageOpener string          `json:"messageOpener"`
	Profile       ProfileMetadata `json:"-"`
}

// Response flattens the result into the wire shape returned by /api/analyze.
func (r *AnalysisResult) Response() AnalyzeResponse {
	return AnalyzeResponse{
		Flag:          r.Flag,
		Reasoning:     r.Reasoning,
		RedFlags:      r.RedFlags,
		GreenFlags:    r.GreenFlags,
		MessageOpener: r.MessageOpener,
		Followers:     r.Profile.Followers,
		Following:     r.Profile.Following,
		Posts:         r.Profile.Posts,
		Bio:           r.Profile.Bio,
		ImageURL:      r.Profile.AvatarURL,
	}
}
