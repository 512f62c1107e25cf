// Package router provides a method-aware HTTP router with typed request
// contexts and composable middleware.
//
// Routing is delegated to net/http pattern matching, so patterns accept
// path wildcards ("/items/{id}") and method dispatch is handled for you.
// The pattern "/" is registered as an exact match for the root path; use
// "/{path...}" or Handle("/") semantics through a wildcard when a catch-all
// is required.
//
//	r := router.New[*router.Context](
//		router.WithMiddleware(middleware.RequestID[*router.Context]()),
//	)
//
//	r.Get("/", overview)
//	r.Post("/auth", issueHandler)
//
//	r.Group(func(api router.Router[*router.Context]) {
//		api.Use(middleware.Bearer[*router.Context](authService))
//		api.Get("/api/session", sessionInfo)
//	})
//
//	http.ListenAndServe(":8080", r)
//
// Middleware registered on a router applies to every route of that router
// and of the groups derived from it, in registration order, regardless of
// whether Use is called before or after the routes are declared.
//
// A handler that panics is recovered; the panic is converted to a
// PanicError and passed to the error handler unless the response has
// already been written.
package router
