package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/dashboard/core/logger"
)

// Cleanup returns a function that calls s.DeleteExpired every interval until
// ctx is done. It fits errgroup.Go and only returns when ctx is done: failed
// sweeps are logged and retried on the next tick. A non-positive interval
// disables sweeping. A nil log discards output.
func Cleanup(ctx context.Context, s Sweeper, interval time.Duration, log *slog.Logger) func() error {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("session_sweep"))

	return func() error {
		if interval <= 0 {
			<-ctx.Done()
			return nil
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				n, err := s.DeleteExpired(ctx)
				if err != nil {
					if ctx.Err() == nil {
						log.WarnContext(ctx, "expired session sweep failed", logger.Error(err))
					}
					continue
				}
				if n > 0 {
					log.DebugContext(ctx, "expired sessions removed", logger.Key("count", n))
				}
			}
		}
	}
}
