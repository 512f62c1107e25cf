// Package logger builds *slog.Logger instances with environment presets and
// provides attribute helpers.
//
//	log := logger.New(logger.WithDevelopment("dashboard"))
//	log := logger.New(
//		logger.WithProduction("dashboard"),
//		logger.WithContextExtractors(middleware.SessionIDExtractor()),
//	)
//
// Development uses a text handler at debug level, production a JSON handler
// at info level. Options apply in order, so later options override presets.
//
// Context extractors add attributes from the context passed to the
// *Context logging methods:
//
//	log.InfoContext(ctx, "session validated")
//	// ... session_id=4f0c... request_id=8a1e...
//
// Attribute helpers return an empty slog.Attr for empty inputs, which slog
// drops, so they are safe without nil checks:
//
//	log.Warn("usage counter update failed", logger.Error(err), logger.SessionID(id))
package logger
