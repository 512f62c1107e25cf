package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/dashboard/core/logger"
	"github.com/dmitrymomot/dashboard/core/session"
	"github.com/dmitrymomot/dashboard/pkg/async"
)

const (
	// DefaultTTL is the lifetime of issued sessions.
	DefaultTTL = 7 * 24 * time.Hour
	// DefaultUsageTimeout bounds a background usage counter update.
	DefaultUsageTimeout = 2 * time.Second
)

// Service validates and issues sessions against a session.Store.
type Service struct {
	store        session.Store
	ttl          time.Duration
	trackUsage   bool
	usageTimeout time.Duration
	logger       *slog.Logger
	now          func() time.Time
	newID        func() string
}

// Option configures a Service.
type Option func(*Service)

// WithTTL sets the lifetime of issued sessions. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithUsageTracking toggles the per-validation request counter.
func WithUsageTracking(enabled bool) Option {
	return func(s *Service) { s.trackUsage = enabled }
}

// WithUsageTimeout bounds each background counter update.
func WithUsageTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.usageTimeout = timeout
		}
	}
}

// WithLogger sets the logger for issuance and usage failures.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewService creates a Service. It panics if store is nil.
func NewService(store session.Store, opts ...Option) *Service {
	if store == nil {
		panic("auth: session store is required")
	}
	s := &Service{
		store:        store,
		ttl:          DefaultTTL,
		trackUsage:   true,
		usageTimeout: DefaultUsageTimeout,
		logger:       logger.Discard(),
		now:          time.Now,
		newID:        func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate reports whether id names a live session. Storage failures are
// returned as errors and never reported as "not found".
func (s *Service) Validate(ctx context.Context, id string) (Result, error) {
	rec, err := s.get(ctx, id)
	if err != nil {
		return Result{}, fmt.Errorf("validate session: %w", err)
	}
	if rec == nil {
		return Result{Valid: false, Reason: ReasonNotFound}, nil
	}

	if s.trackUsage {
		async.Detached(requestContext(ctx), s.usageTimeout, rec.ID, s.incrementUsage)
	}

	return Result{Valid: true}, nil
}

// Issue creates a new session for clientIP, which may be empty.
func (s *Service) Issue(ctx context.Context, clientIP string) (string, error) {
	rec := session.NewRecord(s.newID(), clientIP, s.now(), s.ttl)
	if err := s.store.Set(ctx, rec); err != nil {
		return "", fmt.Errorf("issue session: %w", storageError("set", err))
	}
	s.logger.DebugContext(ctx, "session issued", logger.SessionID(rec.ID), logger.ClientIP(clientIP))
	return rec.ID, nil
}

// Lookup returns the record for id or ErrSessionNotFound.
func (s *Service) Lookup(ctx context.Context, id string) (*session.Record, error) {
	rec, err := s.get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if rec == nil {
		return nil, ErrSessionNotFound
	}
	return rec, nil
}

// Healthcheck probes the store when it supports it.
func (s *Service) Healthcheck(ctx context.Context) error {
	if hc, ok := s.store.(session.HealthChecker); ok {
		return hc.Healthcheck(ctx)
	}
	return nil
}

// get returns (nil, nil) for malformed, unknown or expired ids.
func (s *Service) get(ctx context.Context, id string) (*session.Record, error) {
	if id == "" {
		return nil, ErrMissingSessionID
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, storageError("get", err)
	}
	if rec == nil || rec.Expired(s.now()) {
		return nil, nil
	}
	return rec, nil
}

func (s *Service) incrementUsage(ctx context.Context, id string) error {
	if err := s.store.IncrementRequests(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "usage counter update failed",
			logger.SessionID(id),
			logger.Error(err),
		)
		return err
	}
	return nil
}

// requestContext unwraps handler contexts to the request's own context.
// Handler contexts rebind their values with SetValue, which must not be
// observed by goroutines that outlive Validate.
func requestContext(ctx context.Context) context.Context {
	if rc, ok := ctx.(interface{ Request() *http.Request }); ok {
		if r := rc.Request(); r != nil {
			return r.Context()
		}
	}
	return ctx
}

// storageError keeps the ErrStorage contract for stores that return raw errors.
func storageError(op string, err error) error {
	if errors.Is(err, session.ErrStorage) {
		return err
	}
	return session.StorageError(op, err)
}
