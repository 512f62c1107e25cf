// Package auth validates and issues anonymous dashboard sessions.
//
// Service is the in-process implementation backed by a session.Store.
// Client talks to a remote auth endpoint over HTTP and satisfies the same
// Authenticator interface, so the session gate works in either topology.
//
//	svc := auth.NewService(store,
//		auth.WithTTL(7*24*time.Hour),
//		auth.WithLogger(log),
//	)
//
//	res, err := svc.Validate(ctx, id)
//	switch {
//	case errors.Is(err, auth.ErrMissingSessionID):
//		// caller bug, id was empty
//	case err != nil:
//		// storage unavailable
//	case !res.Valid:
//		// issue a new session
//	}
//
// IssueHandler and ValidateHandler expose the service as POST /auth and
// GET /auth?sessionId=, the endpoints Client consumes.
package auth
