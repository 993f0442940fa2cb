package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/redflag/internal/parsing"
	"github.com/jonathan/redflag/internal/types"
)

const countExpr = `(\d+(?:[,.]\d+)*[KMB]?)\s*`

var (
	followersPattern = regexp.MustCompile(`(?i)` + countExpr + `Followers`)
	followingPattern = regexp.MustCompile(`(?i)` + countExpr + `Following`)
	postsPattern     = regexp.MustCompile(`(?i)` + countExpr + `Posts`)
	bioPattern       = regexp.MustCompile(`(?i)Posts\s+-\s+([^@]+)`)
)

// FromHTML extracts profile metadata from an Instagram profile page. The
// counts and bio come from the description meta tag, the avatar from
// og:image. A page whose counts are all zero is treated as inaccessible.
func FromHTML(username, html string) types.ProfileMetadata {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Placeholder(username)
	}

	description := parsing.DecodeEntities(metaContent(doc, `meta[name="description"]`))

	profile := types.ProfileMetadata{
		Username:  username,
		Followers: matchCount(followersPattern, description),
		Following: matchCount(followingPattern, description),
		Posts:     matchCount(postsPattern, description),
		Bio:       matchBio(description),
		Captions:  []string{},
		AvatarURL: metaContent(doc, `meta[property="og:image"]`),
	}

	if !profile.HasActivity() {
		return Placeholder(username)
	}
	return profile
}

// HasDescription reports whether the page carries a description meta tag.
// Login walls and client-rendered shells do not.
func HasDescription(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	return metaContent(doc, `meta[name="description"]`) != ""
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func matchCount(pattern *regexp.Regexp, description string) int {
	m := pattern.FindStringSubmatch(description)
	if m == nil {
		return 0
	}
	return parsing.ParseCount(m[1])
}

func matchBio(description string) string {
	m := bioPattern.FindStringSubmatch(description)
	if m == nil {
		return NoBio
	}
	bio := strings.TrimSpace(m[1])
	bio = strings.TrimSpace(strings.TrimSuffix(bio, "("))
	if bio == "" {
		return NoBio
	}
	return bio
}
