package session

import "context"

// Store persists session records. Implementations must be safe for
// concurrent use and must not retry failed operations.
type Store interface {
	// Get returns the record for id, or (nil, nil) when it is absent or expired.
	Get(ctx context.Context, id string) (*Record, error)
	// Set creates or replaces a record. Last write wins.
	Set(ctx context.Context, rec Record) error
	// IncrementRequests bumps the usage counter of an existing record.
	// Unknown ids are left absent.
	IncrementRequests(ctx context.Context, id string) error
}

// HealthChecker is implemented by stores that can report backend health.
type HealthChecker interface {
	Healthcheck(ctx context.Context) error
}

// Sweeper is implemented by stores that need expired records purged
// explicitly because the backend has no native TTL.
type Sweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}
