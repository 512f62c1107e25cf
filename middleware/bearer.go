package middleware

import (
	"log/slog"
	"strings"

	"github.com/dmitrymomot/dashboard/core/auth"
	"github.com/dmitrymomot/dashboard/core/handler"
	"github.com/dmitrymomot/dashboard/core/logger"
	"github.com/dmitrymomot/dashboard/core/response"
)

// BearerConfig configures Bearer.
type BearerConfig struct {
	Skip func(ctx handler.Context) bool
	// Auth validates the presented session id. Required.
	Auth   auth.Authenticator
	Logger *slog.Logger
}

// Bearer requires Authorization: Bearer <session id> naming a live session.
// Missing or unknown tokens answer 401, auth failures 503.
func Bearer[C handler.Context](a auth.Authenticator) handler.Middleware[C] {
	return BearerWithConfig[C](BearerConfig{Auth: a})
}

// BearerWithConfig is Bearer with a custom configuration.
func BearerWithConfig[C handler.Context](cfg BearerConfig) handler.Middleware[C] {
	if cfg.Auth == nil {
		panic("middleware: bearer guard requires an authenticator")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	log := cfg.Logger.With(logger.Component("bearer"))

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			token, ok := bearerToken(ctx.Request().Header.Get("Authorization"))
			if !ok {
				return response.Error(response.ErrUnauthorized.WithMessage("missing bearer token"))
			}

			res, err := cfg.Auth.Validate(ctx.Request().Context(), token)
			if err != nil {
				log.ErrorContext(ctx, "bearer validation failed", logger.Error(err))
				return response.Error(response.ErrServiceUnavailable)
			}
			if !res.Valid {
				return response.Error(response.ErrUnauthorized.WithMessage("invalid session"))
			}

			ctx.SetValue(sessionIDContextKey{}, token)
			return next(ctx)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
