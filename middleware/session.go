package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/dashboard/core/auth"
	"github.com/dmitrymomot/dashboard/core/cookie"
	"github.com/dmitrymomot/dashboard/core/handler"
	"github.com/dmitrymomot/dashboard/core/logger"
	"github.com/dmitrymomot/dashboard/core/response"
	"github.com/dmitrymomot/dashboard/pkg/clientip"
)

const (
	// DefaultSessionCookieName is the cookie carrying the session id.
	DefaultSessionCookieName = "sid"
	// DefaultSessionMaxAge is the cookie lifetime in seconds (7 days).
	DefaultSessionMaxAge = 604800
)

// DefaultProtectedRoutes are the dashboard pages gated by default.
var DefaultProtectedRoutes = []string{"/", "/data", "/map"}

// FailureMode decides what happens when the auth dependency fails.
type FailureMode int

const (
	// FailureDegrade lets the request through without a session.
	FailureDegrade FailureMode = iota
	// FailureReject answers 503 through the router's error handler.
	FailureReject
)

func (m FailureMode) String() string {
	if m == FailureReject {
		return "reject"
	}
	return "degrade"
}

// ParseFailureMode accepts "degrade" (or empty) and "reject".
func ParseFailureMode(s string) (FailureMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "degrade":
		return FailureDegrade, nil
	case "reject":
		return FailureReject, nil
	default:
		return FailureDegrade, fmt.Errorf("unknown session failure mode %q", s)
	}
}

type sessionIDContextKey struct{}

// SessionGateConfig configures SessionGate.
type SessionGateConfig struct {
	Skip func(ctx handler.Context) bool
	// Auth validates and issues sessions. Required.
	Auth auth.Authenticator
	// Cookies builds and reads the session cookie (default: cookie.New()).
	Cookies *cookie.Manager
	// CookieName defaults to "sid".
	CookieName string
	// MaxAge of the session cookie in seconds (default: 604800).
	MaxAge int
	// Secure marks the cookie HTTPS-only. Set it in production.
	Secure bool
	// ProtectedRoutes lists gated paths (default: DefaultProtectedRoutes).
	ProtectedRoutes []string
	// FailureMode applies when Validate or Issue fails (default: FailureDegrade).
	FailureMode FailureMode
	// ClientIP derives the address recorded with new sessions
	// (default: first X-Forwarded-For entry, else empty).
	ClientIP func(r *http.Request) string
	Logger   *slog.Logger
}

// SessionGate ensures requests to protected routes carry a live session.
//
// Missing or stale cookies lead to a new session and a Set-Cookie header on
// the response. Failures of the auth dependency follow FailureMode. The session
// in force is available to handlers through GetSessionID.
func SessionGate[C handler.Context](cfg SessionGateConfig) handler.Middleware[C] {
	if cfg.Auth == nil {
		panic("middleware: session gate requires an authenticator")
	}
	if cfg.Cookies == nil {
		cfg.Cookies = cookie.New()
	}
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultSessionCookieName
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultSessionMaxAge
	}
	if cfg.ProtectedRoutes == nil {
		cfg.ProtectedRoutes = DefaultProtectedRoutes
	}
	if cfg.ClientIP == nil {
		cfg.ClientIP = clientip.FromForwardedFor
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	protected := NewRouteMatcher(cfg.ProtectedRoutes...)
	log := cfg.Logger.With(logger.Component("session_gate"))

	cookieOpts := []cookie.Option{
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSecure(cfg.Secure),
		cookie.WithMaxAge(cfg.MaxAge),
	}

	degrade := func(ctx C, next handler.HandlerFunc[C], err error) handler.Response {
		if cfg.FailureMode == FailureReject {
			log.ErrorContext(ctx, "session dependency failed, rejecting request", logger.Error(err))
			return response.Error(response.ErrServiceUnavailable)
		}
		log.WarnContext(ctx, "session dependency failed, continuing without session", logger.Error(err))
		return next(ctx)
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}
			req := ctx.Request()
			if !protected.Match(req.URL.Path) {
				return next(ctx)
			}

			id, _ := cfg.Cookies.Get(req, cfg.CookieName)
			if id != "" {
				res, err := cfg.Auth.Validate(req.Context(), id)
				if err != nil {
					return degrade(ctx, next, err)
				}
				if res.Valid {
					ctx.SetValue(sessionIDContextKey{}, id)
					return next(ctx)
				}
				log.DebugContext(ctx, "stale session cookie", logger.SessionID(id), logger.Result(res.Reason))
			}

			newID, err := cfg.Auth.Issue(ctx, cfg.ClientIP(req))
			if err != nil {
				return degrade(ctx, next, err)
			}

			c, err := cfg.Cookies.Cookie(cfg.CookieName, newID, cookieOpts...)
			if err != nil {
				return degrade(ctx, next, err)
			}

			ctx.SetValue(sessionIDContextKey{}, newID)
			log.InfoContext(ctx, "session created", logger.SessionID(newID))

			return response.WithCache(response.WithCookie(next(ctx), c), 0)
		}
	}
}

// GetSessionID returns the session ID bound to the request by SessionGate or Bearer.
func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDContextKey{}).(string)
	return id, ok && id != ""
}

// SessionIDExtractor adds session_id to records logged with a request context.
func SessionIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id, ok := GetSessionID(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return logger.SessionID(id), true
	}
}
