package extract

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/jonathan/redflag/internal/parsing"
	"github.com/jonathan/redflag/internal/schemas"
	"github.com/jonathan/redflag/internal/types"
)

// maxCaptions bounds how many recent captions are kept per profile.
const maxCaptions = 12

// Count is a provider counter. Providers send either JSON numbers or display
// strings such as "12.3K"; both go through parsing.ParseCount.
type Count int

// UnmarshalJSON never fails: unrecognized values decode to 0.
func (c *Count) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if unquoted, ok := strings.CutPrefix(raw, `"`); ok {
		raw = strings.TrimSuffix(unquoted, `"`)
	}
	*c = Count(parsing.ParseCount(raw))
	return nil
}

// ProfileDetails is the profile object returned by the scraping provider.
// The provider calls the following count "followsCount".
type ProfileDetails struct {
	Username        string `json:"username"`
	FullName        string `json:"fullName"`
	FollowersCount  Count  `json:"followersCount"`
	FollowsCount    Count  `json:"followsCount"`
	PostsCount      Count  `json:"postsCount"`
	Biography       string `json:"biography"`
	ProfilePicURL   string `json:"profilePicUrl"`
	ProfilePicURLHD string `json:"profilePicUrlHD"`
	Private         bool   `json:"private"`
	LatestPosts     []struct {
		Caption string `json:"caption"`
	} `json:"latestPosts"`
}

// ParseDetails validates and decodes a provider payload. Dataset responses
// (arrays) yield their first item.
func ParseDetails(payload []byte) (ProfileDetails, error) {
	if err := schemas.ValidateProfileDetails(payload); err != nil {
		return ProfileDetails{}, &parsing.ParseError{Message: "profile details rejected by schema", Cause: err}
	}

	var details ProfileDetails
	if trimmed := bytes.TrimSpace(payload); len(trimmed) > 0 && trimmed[0] == '[' {
		var items []ProfileDetails
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return ProfileDetails{}, &parsing.ParseError{Message: "failed to decode profile dataset", Cause: err}
		}
		details = items[0]
	} else if err := json.Unmarshal(trimmed, &details); err != nil {
		return ProfileDetails{}, &parsing.ParseError{Message: "failed to decode profile details", Cause: err}
	}

	return details, nil
}

// FromDetails maps a provider object onto ProfileMetadata. Private or empty
// objects without any counts produce the placeholder profile.
func FromDetails(username string, d ProfileDetails) types.ProfileMetadata {
	profile := types.ProfileMetadata{
		Username:  username,
		Followers: int(d.FollowersCount),
		Following: int(d.FollowsCount),
		Posts:     int(d.PostsCount),
		Bio:       parsing.DecodeEntities(d.Biography),
		Captions:  captions(d),
		AvatarURL: d.ProfilePicURLHD,
	}
	if d.Username != "" {
		profile.Username = d.Username
	}
	if profile.Bio == "" {
		profile.Bio = NoBio
	}
	if profile.AvatarURL == "" {
		profile.AvatarURL = d.ProfilePicURL
	}

	if !profile.HasActivity() && (d.Private || d.Username == "") {
		return Placeholder(username)
	}
	return profile
}

func captions(d ProfileDetails) []string {
	out := make([]string, 0, min(len(d.LatestPosts), maxCaptions))
	for _, post := range d.LatestPosts {
		if len(out) == maxCaptions {
			break
		}
		if c := strings.TrimSpace(post.Caption); c != "" {
			out = append(out, c)
		}
	}
	return out
}
