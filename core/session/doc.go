// Package session defines the anonymous dashboard session record, the Store
// contract every backend implements, and an in-memory Store.
//
// A Record is created once per visitor when the session gate issues a new
// id, is read on every protected page view, and carries a best-effort
// usage counter. Records carry an absolute expiry (epoch seconds); stores
// report expired records as absent even if the backend has not evicted them.
//
//	store := session.NewMemoryStore()
//
//	err := store.Set(ctx, session.Record{
//		ID:        id,
//		CreatedAt: time.Now().UnixMilli(),
//		ClientIP:  "203.0.113.7",
//		ExpiresAt: time.Now().Add(7 * 24 * time.Hour).Unix(),
//	})
//
//	rec, err := store.Get(ctx, id)
//	switch {
//	case err != nil:
//		// errors.Is(err, session.ErrStorage)
//	case rec == nil:
//		// unknown or expired
//	}
//
// Backends backed by external systems live under integration/database.
package session
