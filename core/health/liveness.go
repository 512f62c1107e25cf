package health

import (
	"github.com/dmitrymomot/dashboard/core/handler"
	"github.com/dmitrymomot/dashboard/core/response"
)

// Liveness reports that the process is serving requests.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// NoContent answers 204 without a body.
func NoContent[C handler.Context](C) handler.Response {
	return response.NoContent()
}
