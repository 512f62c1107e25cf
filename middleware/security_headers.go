package middleware

import (
	"github.com/dmitrymomot/dashboard/core/handler"
	"github.com/dmitrymomot/dashboard/core/response"
)

// SecurityHeadersConfig lists response headers applied to every response.
// Empty values are not sent.
type SecurityHeadersConfig struct {
	Skip                    func(ctx handler.Context) bool
	ContentTypeOptions      string
	FrameOptions            string
	ReferrerPolicy          string
	StrictTransportSecurity string
	ContentSecurityPolicy   string
	PermissionsPolicy       string
}

// DefaultSecurityHeaders suits the dashboard's server-rendered pages.
var DefaultSecurityHeaders = SecurityHeadersConfig{
	ContentTypeOptions:    "nosniff",
	FrameOptions:          "SAMEORIGIN",
	ReferrerPolicy:        "strict-origin-when-cross-origin",
	ContentSecurityPolicy: "default-src 'self'; img-src 'self' data: https:; style-src 'self' 'unsafe-inline'",
	PermissionsPolicy:     "geolocation=(), microphone=(), camera=()",
}

// SecurityHeaders applies DefaultSecurityHeaders. HSTS is added when
// production is true.
func SecurityHeaders[C handler.Context](production bool) handler.Middleware[C] {
	cfg := DefaultSecurityHeaders
	if production {
		cfg.StrictTransportSecurity = "max-age=31536000; includeSubDomains"
	}
	return SecurityHeadersWithConfig[C](cfg)
}

func SecurityHeadersWithConfig[C handler.Context](cfg SecurityHeadersConfig) handler.Middleware[C] {
	headers := map[string]string{
		"X-Content-Type-Options":    cfg.ContentTypeOptions,
		"X-Frame-Options":           cfg.FrameOptions,
		"Referrer-Policy":           cfg.ReferrerPolicy,
		"Strict-Transport-Security": cfg.StrictTransportSecurity,
		"Content-Security-Policy":   cfg.ContentSecurityPolicy,
		"Permissions-Policy":        cfg.PermissionsPolicy,
	}
	for k, v := range headers {
		if v == "" {
			delete(headers, k)
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}
			return response.WithHeaders(next(ctx), headers)
		}
	}
}
