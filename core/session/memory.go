package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store. Expired records are hidden lazily and
// removed by DeleteExpired.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	now     func() time.Time
}

var (
	_ Store         = (*MemoryStore)(nil)
	_ HealthChecker = (*MemoryStore)(nil)
	_ Sweeper       = (*MemoryStore)(nil)
)

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		records: make(map[string]Record),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, StorageError("get", err)
	}
	if id == "" {
		return nil, ErrInvalidID
	}

	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()

	if !ok || rec.Expired(s.now()) {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryStore) Set(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return StorageError("set", err)
	}
	if rec.ID == "" {
		return ErrInvalidID
	}

	s.mu.Lock()
	s.records[rec.ID] = rec
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) IncrementRequests(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return StorageError("increment", err)
	}
	if id == "" {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || rec.Expired(s.now()) {
		return nil
	}
	rec.Requests++
	s.records[id] = rec
	return nil
}

// DeleteExpired removes expired records and returns how many were removed.
func (s *MemoryStore) DeleteExpired(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, StorageError("delete expired", err)
	}

	now := s.now()
	var n int64

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, rec := range s.records {
		if rec.Expired(now) {
			delete(s.records, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored records, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Healthcheck always succeeds.
func (s *MemoryStore) Healthcheck(context.Context) error {
	return nil
}
