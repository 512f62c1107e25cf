package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/dashboard/core/handler"
	"github.com/dmitrymomot/dashboard/core/logger"
	"github.com/dmitrymomot/dashboard/core/response"
)

type issueRequest struct {
	ClientIPAddress string `json:"clientIpAddress"`
}

type issueResponse struct {
	SessionID string `json:"sessionId"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

const (
	msgSessionValid   = "Session is valid"
	msgSessionMissing = "Session not found"
	msgInternal       = "Internal server error"
	msgInvalidBody    = "Invalid request body"
	maxIssueBodyBytes = 1 << 12
)

func errorJSON(status int, msg string) handler.Response {
	return response.JSONWithStatus(errorResponse{Error: msg}, status)
}

// IssueHandler serves POST /auth: {"clientIpAddress": "..."} -> {"sessionId": "..."}.
func IssueHandler[C handler.Context](auth Authenticator, log *slog.Logger) handler.HandlerFunc[C] {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx C) handler.Response {
		var req issueRequest
		body := http.MaxBytesReader(ctx.ResponseWriter(), ctx.Request().Body, maxIssueBodyBytes)
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			return errorJSON(http.StatusBadRequest, msgInvalidBody)
		}

		id, err := auth.Issue(ctx, req.ClientIPAddress)
		if err != nil {
			log.ErrorContext(ctx, "failed to issue session", logger.Error(err))
			return errorJSON(http.StatusInternalServerError, msgInternal)
		}

		return response.JSON(issueResponse{SessionID: id})
	}
}

// ValidateHandler serves GET /auth?sessionId=.
func ValidateHandler[C handler.Context](auth Authenticator, log *slog.Logger) handler.HandlerFunc[C] {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx C) handler.Response {
		id := ctx.Request().URL.Query().Get("sessionId")

		res, err := auth.Validate(ctx, id)
		switch {
		case errors.Is(err, ErrMissingSessionID):
			return errorJSON(http.StatusBadRequest, ErrMissingSessionID.Error())
		case err != nil:
			log.ErrorContext(ctx, "failed to validate session", logger.SessionID(id), logger.Error(err))
			return errorJSON(http.StatusInternalServerError, msgInternal)
		case !res.Valid:
			return errorJSON(http.StatusUnauthorized, msgSessionMissing)
		}

		return response.JSON(messageResponse{Message: msgSessionValid})
	}
}
