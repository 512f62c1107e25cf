package dashboard

import (
	"errors"

	"github.com/dmitrymomot/dashboard/core/auth"
	"github.com/dmitrymomot/dashboard/core/handler"
	"github.com/dmitrymomot/dashboard/core/logger"
	"github.com/dmitrymomot/dashboard/core/response"
)

type sessionInfo struct {
	SessionID string `json:"sessionId"`
	CreatedAt int64  `json:"createdAt"`
	ClientIP  string `json:"clientIp"`
	Requests  int64  `json:"requests"`
}

// sessionHandler serves GET /api/session for a bearer-authenticated caller.
func (a *App) sessionHandler(ctx *Context) handler.Response {
	rec, err := a.service.Lookup(ctx, ctx.SessionID())
	switch {
	case errors.Is(err, auth.ErrSessionNotFound), errors.Is(err, auth.ErrMissingSessionID):
		return response.Error(response.ErrUnauthorized.WithMessage("invalid session"))
	case err != nil:
		a.logger.ErrorContext(ctx, "session lookup failed", logger.Error(err))
		return response.Error(response.ErrServiceUnavailable)
	}

	return response.JSON(sessionInfo{
		SessionID: rec.ID,
		CreatedAt: rec.CreatedAt,
		ClientIP:  rec.ClientIP,
		Requests:  rec.Requests,
	})
}
