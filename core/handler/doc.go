// Package handler defines the request-processing primitives shared by the
// router, the middleware and the HTTP endpoints of the dashboard.
//
// A handler receives a typed request context and returns a Response: a
// deferred render function. Middleware can therefore inspect the request,
// run the next handler and decorate the returned Response (for example to
// attach a Set-Cookie header) before anything is written to the client.
//
//	func page(ctx *router.Context) handler.Response {
//		return response.HTML("<h1>Overview</h1>")
//	}
//
//	func withHeader(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
//		return func(ctx *router.Context) handler.Response {
//			resp := next(ctx)
//			return func(w http.ResponseWriter, r *http.Request) error {
//				w.Header().Set("X-Frame-Options", "DENY")
//				return resp(w, r)
//			}
//		}
//	}
package handler
