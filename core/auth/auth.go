package auth

import "context"

// ReasonNotFound is the Result reason for unknown, expired or malformed ids.
const ReasonNotFound = "session not found"

// Result is the outcome of a validation.
type Result struct {
	Valid  bool
	Reason string
}

// Authenticator validates and issues session ids.
type Authenticator interface {
	Validate(ctx context.Context, id string) (Result, error)
	Issue(ctx context.Context, clientIP string) (string, error)
}

var (
	_ Authenticator = (*Service)(nil)
	_ Authenticator = (*Client)(nil)
)
