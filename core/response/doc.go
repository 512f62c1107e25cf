// Package response builds handler.Response values for the dashboard: plain
// text and HTML pages, JSON payloads and structured HTTP errors.
//
//	func overview(ctx *router.Context) handler.Response {
//		return response.HTML("<h1>Overview</h1>")
//	}
//
//	func sessionInfo(ctx *router.Context) handler.Response {
//		rec, err := svc.Lookup(ctx, id)
//		if err != nil {
//			return response.Error(response.ErrServiceUnavailable.WithError(err))
//		}
//		return response.JSON(rec)
//	}
//
// Errors returned by a Response reach the router's error handler. Use
// JSONErrorHandler for API routes and ErrorHandler for plain text.
//
// Decorators (WithHeaders, WithCookie, WithCache) wrap an existing Response
// and apply their changes before it is rendered, which lets middleware add a
// Set-Cookie header to whatever the endpoint returns.
package response
