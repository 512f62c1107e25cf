package dashboard

import (
	"net/http"

	"github.com/dmitrymomot/dashboard/core/router"
	"github.com/dmitrymomot/dashboard/middleware"
)

// Context is the request context of the dashboard handlers.
type Context struct {
	*router.Context
}

func newContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{Context: router.NewContext(w, r)}
}

// SessionID returns the session bound to the request, or "" for
// requests that passed without one.
func (c *Context) SessionID() string {
	id, _ := middleware.GetSessionID(c)
	return id
}
