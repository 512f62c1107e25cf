package dashboard

import (
	"log/slog"

	"github.com/dmitrymomot/dashboard/core/logger"
	"github.com/dmitrymomot/dashboard/middleware"
)

// NewLogger builds the process logger: JSON in production, text otherwise.
// Records logged with a request context carry request_id and session_id.
func NewLogger(cfg Config) *slog.Logger {
	opts := []logger.Option{
		logger.WithContextExtractors(
			middleware.RequestIDExtractor(),
			middleware.SessionIDExtractor(),
		),
	}
	if cfg.IsProduction() {
		opts = append(opts, logger.WithProduction(cfg.AppName))
	} else {
		opts = append(opts, logger.WithDevelopment(cfg.AppName))
	}

	var level slog.Level
	if cfg.LogLevel != "" && level.UnmarshalText([]byte(cfg.LogLevel)) == nil {
		opts = append(opts, logger.WithLevel(level))
	}
	return logger.New(opts...)
}
