// Package health provides liveness and readiness handlers.
//
//	r.Get("/live", health.Liveness[*router.Context])
//	r.Get("/ready", health.Readiness[*router.Context](log, store.Healthcheck))
//
// Readiness runs every check concurrently with a shared timeout and answers
// 503 when any of them fails.
package health
