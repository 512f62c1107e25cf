// Package middleware provides the dashboard's request middleware.
//
// SessionGate is the core of the package: for protected paths it makes sure
// the request carries a cookie naming a live session, issuing a new one when
// the cookie is absent or stale.
//
//	r.Use(middleware.SessionGate[*router.Context](middleware.SessionGateConfig{
//		Auth:            authService,
//		Secure:          cfg.IsProduction(),
//		ProtectedRoutes: []string{"/", "/data", "/map"},
//		Logger:          log,
//	}))
//
// Bearer guards API routes with Authorization: Bearer <session id>.
// RequestID, Logging and SecurityHeaders are ambient helpers.
//
// Every middleware follows the same shape: a zero-config constructor, a
// WithConfig variant taking a config struct with an optional Skip func, and
// response decoration for anything written to the client.
package middleware
