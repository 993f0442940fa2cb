package parsing

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when the model produced no text at all.
// Unlike malformed text it is never defaulted.
var ErrEmptyResponse = errors.New("empty response from model")

// ParseError represents an error parsing an upstream payload
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
