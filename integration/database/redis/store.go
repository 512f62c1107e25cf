package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/dashboard/core/session"
)

const (
	fieldCreatedAt = "created_at"
	fieldClientIP  = "client_ip"
	fieldRequests  = "requests"
	fieldExpiry    = "expiry"
)

// incrementScript bumps the counter only when the session hash exists.
var incrementScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return redis.call("HINCRBY", KEYS[1], ARGV[1], 1)
end
return 0
`)

// Store keeps sessions as Redis hashes.
type Store struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// StoreOption configures Store.
type StoreOption func(*Store)

// WithKeyPrefix sets the key prefix (default: "session:").
func WithKeyPrefix(prefix string) StoreOption {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore returns a Store using client.
func NewStore(client redis.UniversalClient, opts ...StoreOption) *Store {
	s := &Store{client: client, prefix: "session:", now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ session.Store         = (*Store)(nil)
	_ session.HealthChecker = (*Store)(nil)
)

func (s *Store) key(id string) string {
	return s.prefix + id
}

// Get returns the session or nil when it is absent or expired.
func (s *Store) Get(ctx context.Context, id string) (*session.Record, error) {
	if id == "" {
		return nil, session.ErrInvalidID
	}

	fields, err := s.client.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, session.StorageError("get", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	rec, err := decode(id, fields)
	if err != nil {
		return nil, session.StorageError("decode", err)
	}
	if rec.Expired(s.now()) {
		return nil, nil
	}
	return rec, nil
}

// Set writes the session hash and aligns the key expiry with the record.
func (s *Store) Set(ctx context.Context, rec session.Record) error {
	if rec.ID == "" {
		return session.ErrInvalidID
	}

	key := s.key(rec.ID)
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, key)
		p.HSet(ctx, key,
			fieldCreatedAt, rec.CreatedAt,
			fieldClientIP, rec.ClientIP,
			fieldRequests, rec.Requests,
			fieldExpiry, rec.ExpiresAt,
		)
		if rec.ExpiresAt > 0 {
			p.ExpireAt(ctx, key, time.Unix(rec.ExpiresAt, 0))
		}
		return nil
	})
	if err != nil {
		return session.StorageError("set", err)
	}
	return nil
}

// IncrementRequests bumps the usage counter of an existing session.
func (s *Store) IncrementRequests(ctx context.Context, id string) error {
	if id == "" {
		return session.ErrInvalidID
	}
	if err := incrementScript.Run(ctx, s.client, []string{s.key(id)}, fieldRequests).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return session.StorageError("increment", err)
	}
	return nil
}

// Healthcheck pings Redis.
func (s *Store) Healthcheck(ctx context.Context) error {
	return Healthcheck(s.client)(ctx)
}

func decode(id string, fields map[string]string) (*session.Record, error) {
	rec := &session.Record{ID: id, ClientIP: fields[fieldClientIP]}

	ints := []struct {
		name string
		dst  *int64
	}{
		{fieldCreatedAt, &rec.CreatedAt},
		{fieldRequests, &rec.Requests},
		{fieldExpiry, &rec.ExpiresAt},
	}
	for _, f := range ints {
		v, ok := fields[f.name]
		if !ok || v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.Join(errors.New("invalid "+f.name), err)
		}
		*f.dst = n
	}
	return rec, nil
}
