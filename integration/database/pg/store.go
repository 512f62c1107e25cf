package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/dashboard/core/session"
)

const (
	querySelect = `SELECT id, created_at, client_ip, requests, expires_at FROM sessions WHERE id = $1`
	queryUpsert = `INSERT INTO sessions (id, created_at, client_ip, requests, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			created_at = EXCLUDED.created_at,
			client_ip  = EXCLUDED.client_ip,
			requests   = EXCLUDED.requests,
			expires_at = EXCLUDED.expires_at`
	queryIncrement     = `UPDATE sessions SET requests = requests + 1 WHERE id = $1`
	queryDeleteExpired = `DELETE FROM sessions WHERE expires_at > 0 AND expires_at <= $1`
)

// Store keeps sessions in the sessions table.
type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewStore returns a Store using pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, now: time.Now}
}

var (
	_ session.Store         = (*Store)(nil)
	_ session.HealthChecker = (*Store)(nil)
	_ session.Sweeper       = (*Store)(nil)
)

// Get returns the session or nil when it is absent or expired.
func (s *Store) Get(ctx context.Context, id string) (*session.Record, error) {
	if id == "" {
		return nil, session.ErrInvalidID
	}

	var rec session.Record
	err := s.pool.QueryRow(ctx, querySelect, id).
		Scan(&rec.ID, &rec.CreatedAt, &rec.ClientIP, &rec.Requests, &rec.ExpiresAt)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, nil
		}
		return nil, session.StorageError("get", err)
	}
	if rec.Expired(s.now()) {
		return nil, nil
	}
	return &rec, nil
}

// Set upserts the session row.
func (s *Store) Set(ctx context.Context, rec session.Record) error {
	if rec.ID == "" {
		return session.ErrInvalidID
	}
	_, err := s.pool.Exec(ctx, queryUpsert, rec.ID, rec.CreatedAt, rec.ClientIP, rec.Requests, rec.ExpiresAt)
	if err != nil {
		return session.StorageError("set", err)
	}
	return nil
}

// IncrementRequests bumps the usage counter. Unknown ids match no row.
func (s *Store) IncrementRequests(ctx context.Context, id string) error {
	if id == "" {
		return session.ErrInvalidID
	}
	if _, err := s.pool.Exec(ctx, queryIncrement, id); err != nil {
		return session.StorageError("increment", err)
	}
	return nil
}

// DeleteExpired removes rows whose expiry has passed.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, queryDeleteExpired, s.now().Unix())
	if err != nil {
		return 0, session.StorageError("delete expired", err)
	}
	return tag.RowsAffected(), nil
}

// Healthcheck pings the pool.
func (s *Store) Healthcheck(ctx context.Context) error {
	return Healthcheck(s.pool)(ctx)
}
