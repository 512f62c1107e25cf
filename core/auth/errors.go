package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSessionID is returned when a session id is required but empty.
	ErrMissingSessionID = errors.New("sessionId is required")
	// ErrSessionNotFound is returned by Lookup for unknown or expired ids.
	ErrSessionNotFound = errors.New("session not found")
	// ErrUpstream is matched by every failure of the remote auth endpoint.
	ErrUpstream = errors.New("auth upstream failure")
	// ErrInvalidBaseURL is returned by NewClient for unusable base URLs.
	ErrInvalidBaseURL = errors.New("invalid auth base url")
)

// UpstreamError reports an unexpected status from the remote auth endpoint.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth upstream: status %d", e.StatusCode)
	}
	return fmt.Sprintf("auth upstream: status %d: %s", e.StatusCode, e.Message)
}

// Is makes errors.Is(err, ErrUpstream) true.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
