package handler

import (
	"context"
	"net/http"
)

// Context is the request context handed to every handler and middleware.
// It is a context.Context bound to the request, so it can be passed straight
// to stores and clients.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}
