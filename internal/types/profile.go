// Package types provides type definitions for structured data used throughout the redflag service.
package types

// ProfileMetadata is the normalized view of a public Instagram profile.
// Counts are never negative; a count that could not be determined is 0.
type ProfileMetadata struct {
	Username  string   `json:"username"`
	Followers int      `json:"followers"`
	Following int      `json:"following"`
	Posts     int      `json:"posts"`
	Bio       string   `json:"bio"`
	Captions  []string `json:"captions"`
	AvatarURL string   `json:"avatarUrl,omitempty"`
	// Placeholder is set when the extractor could not trust its source data.
	Placeholder bool `json:"-"`
}

// HasActivity reports whether any of the three counters is non-zero.
func (p ProfileMetadata) HasActivity() bool {
	return p.Followers > 0 || p.Following > 0 || p.Posts > 0
}
