package session

import "time"

// Record is a persisted anonymous session.
type Record struct {
	ID        string `json:"sessionId"`
	CreatedAt int64  `json:"createdAt"` // epoch milliseconds
	ClientIP  string `json:"clientIp"`
	Requests  int64  `json:"requests"`
	ExpiresAt int64  `json:"expiry"` // epoch seconds, 0 means no expiry
}

// NewRecord builds a record created at now that expires after ttl.
// A non-positive ttl produces a record without expiry.
func NewRecord(id, clientIP string, now time.Time, ttl time.Duration) Record {
	rec := Record{
		ID:        id,
		CreatedAt: now.UnixMilli(),
		ClientIP:  clientIP,
	}
	if ttl > 0 {
		rec.ExpiresAt = now.Add(ttl).Unix()
	}
	return rec
}

// Expired reports whether the record's expiry has passed at now.
func (r Record) Expired(now time.Time) bool {
	return r.ExpiresAt > 0 && now.Unix() >= r.ExpiresAt
}

// TTL returns the remaining lifetime at now. It is zero for records without
// expiry and negative for expired ones.
func (r Record) TTL(now time.Time) time.Duration {
	if r.ExpiresAt == 0 {
		return 0
	}
	return time.Unix(r.ExpiresAt, 0).Sub(now)
}
