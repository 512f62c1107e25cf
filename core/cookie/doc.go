// Package cookie builds and reads HTTP cookies with shared attribute
// defaults. A Manager holds the defaults (path, domain, max-age, secure,
// http-only, same-site) and per-call options override them.
//
//	m := cookie.New(
//		cookie.WithSecure(cfg.Production()),
//		cookie.WithMaxAge(604800),
//	)
//
//	c, err := m.Cookie("sid", sessionID)
//	if err != nil {
//		return err
//	}
//	http.SetCookie(w, c)
//
//	id, err := m.Get(r, "sid")
//	if errors.Is(err, cookie.ErrCookieNotFound) {
//		// no session yet
//	}
//
// Cookie returns the *http.Cookie instead of writing it so that middleware
// can attach it to a deferred handler.Response.
package cookie
