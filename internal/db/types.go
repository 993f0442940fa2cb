package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/redflag/internal/types"
)

// ProfileRecord is the stored form of an analyzed profile, keyed by username.
type ProfileRecord struct {
	Username      string     `json:"username"`
	AnalysisID    uuid.UUID  `json:"analysis_id"`
	Followers     int        `json:"followers"`
	Following     int        `json:"following"`
	Posts         int        `json:"posts"`
	Bio           string     `json:"bio"`
	AvatarURL     *string    `json:"avatar_url,omitempty"`
	Captions      []string   `json:"captions"`
	Flag          types.Flag `json:"flag"`
	Reasoning     string     `json:"reasoning"`
	RedFlags      []string   `json:"red_flags"`
	GreenFlags    []string   `json:"green_flags"`
	MessageOpener string     `json:"message_opener"`
	AnalyzedAt    time.Time  `json:"analyzed_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// NewProfileRecord builds a record from a finished analysis.
func NewProfileRecord(result *types.AnalysisResult, analyzedAt time.Time) *ProfileRecord {
	p := result.Profile
	rec := &ProfileRecord{
		Username:      p.Username,
		AnalysisID:    uuid.New(),
		Followers:     p.Followers,
		Following:     p.Following,
		Posts:         p.Posts,
		Bio:           p.Bio,
		Captions:      nonNil(p.Captions),
		Flag:          result.Flag,
		Reasoning:     result.Reasoning,
		RedFlags:      nonNil(result.RedFlags),
		GreenFlags:    nonNil(result.GreenFlags),
		MessageOpener: result.MessageOpener,
		AnalyzedAt:    analyzedAt.UTC(),
	}
	if p.AvatarURL != "" {
		avatar := p.AvatarURL
		rec.AvatarURL = &avatar
	}
	return rec
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
