package parsing

import (
	"html"
	"strings"
)

// DecodeEntities decodes HTML character references (numeric and named) and
// collapses runs of whitespace into single spaces.
func DecodeEntities(s string) string {
	decoded := html.UnescapeString(s)
	// Double-encoded input such as "&amp;#064;" needs a second pass.
	if strings.Contains(decoded, "&#") {
		decoded = html.UnescapeString(decoded)
	}
	return strings.Join(strings.Fields(decoded), " ")
}

// CleanOpener trims whitespace and wrapping quotes from a generated opener.
func CleanOpener(text string) string {
	text = strings.TrimSpace(text)
	for _, pair := range [][2]string{{`"`, `"`}, {"“", "”"}, {"'", "'"}} {
		if len(text) >= len(pair[0])+len(pair[1]) &&
			strings.HasPrefix(text, pair[0]) && strings.HasSuffix(text, pair[1]) {
			text = strings.TrimSpace(text[len(pair[0]) : len(text)-len(pair[1])])
		}
	}
	return text
}
