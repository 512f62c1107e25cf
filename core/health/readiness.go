package health

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/dashboard/core/handler"
	"github.com/dmitrymomot/dashboard/core/logger"
	"github.com/dmitrymomot/dashboard/core/response"
)

// CheckTimeout bounds the total time of a readiness probe.
const CheckTimeout = 5 * time.Second

// Readiness answers READY when every check succeeds, otherwise 503.
func Readiness[C handler.Context](log *slog.Logger, checks ...func(context.Context) error) handler.HandlerFunc[C] {
	if log == nil {
		log = logger.Discard()
	}

	return func(ctx C) handler.Response {
		cctx, cancel := context.WithTimeout(ctx, CheckTimeout)
		defer cancel()

		g, gctx := errgroup.WithContext(cctx)
		for _, check := range checks {
			if check == nil {
				continue
			}
			g.Go(func() error { return check(gctx) })
		}

		if err := g.Wait(); err != nil {
			log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
			return response.Error(response.ErrServiceUnavailable)
		}
		return response.String("READY")
	}
}
