package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/dashboard/core/handler"
	"github.com/dmitrymomot/dashboard/core/logger"
	"github.com/dmitrymomot/dashboard/pkg/clientip"
)

// LoggingConfig configures the access log middleware.
type LoggingConfig struct {
	Skip   func(ctx handler.Context) bool
	Logger *slog.Logger
	// SlowRequestThreshold logs slower requests at warn (default: 5s).
	SlowRequestThreshold time.Duration
	// Component defaults to "http".
	Component string
}

// Logging writes one access log line per request.
func Logging[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

type statusWriter interface {
	Status() int
}

func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			resp := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				var err error
				if resp != nil {
					err = resp(w, r)
				}

				status := http.StatusOK
				if sw, ok := w.(statusWriter); ok && sw.Status() != 0 {
					status = sw.Status()
				}
				if err != nil {
					status = http.StatusInternalServerError
					var sc interface{ StatusCode() int }
					if errors.As(err, &sc) {
						status = sc.StatusCode()
					}
				}

				latency := time.Since(start)
				level := slog.LevelInfo
				switch {
				case status >= http.StatusInternalServerError:
					level = slog.LevelError
				case latency >= cfg.SlowRequestThreshold || status >= http.StatusBadRequest:
					level = slog.LevelWarn
				}

				cfg.Logger.LogAttrs(r.Context(), level, "request completed",
					logger.Component(cfg.Component),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.StatusCode(status),
					logger.Latency(latency),
					logger.ClientIP(clientip.GetIP(r)),
					logger.UserAgent(r.UserAgent()),
					logger.Error(err),
				)
				return err
			}
		}
	}
}
