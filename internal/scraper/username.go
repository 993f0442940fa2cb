package scraper

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidUsername is returned for input that cannot be an Instagram handle.
var ErrInvalidUsername = errors.New("invalid instagram username")

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._]{1,30}$`)

// NormalizeUsername accepts a bare handle, an @handle or a profile URL and
// returns the handle.
func NormalizeUsername(raw string) (string, error) {
	name := strings.TrimSpace(raw)

	lower := strings.ToLower(name)
	if strings.Contains(lower, "instagram.com/") {
		if !strings.Contains(lower, "://") {
			name = "https://" + name
		}
		u, err := url.Parse(name)
		if err != nil {
			return "", ErrInvalidUsername
		}
		name = strings.Split(strings.Trim(u.Path, "/"), "/")[0]
	}

	name = strings.TrimPrefix(name, "@")
	if !usernamePattern.MatchString(name) {
		return "", ErrInvalidUsername
	}
	return name, nil
}
