package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/redflag/internal/scraper"
)

// Client-facing messages. Internal error text never reaches the response.
const (
	msgUsernameRequired = "Username is required"
	msgInvalidUsername  = "Invalid username"
	msgAnalyzeFailed    = "Failed to analyze profile"
	msgProfileNotFound  = "Profile not found"
	msgStoreDisabled    = "Profile storage is not configured"
	msgLookupFailed     = "Failed to load profile"
)

// HTTPStatus returns the status code and message for an analyze error.
func HTTPStatus(err error) (int, string) {
	switch {
	case errors.Is(err, scraper.ErrInvalidUsername):
		return http.StatusBadRequest, msgInvalidUsername
	default:
		return http.StatusInternalServerError, msgAnalyzeFailed
	}
}
