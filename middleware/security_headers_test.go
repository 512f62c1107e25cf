package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/dashboard/core/handler"
	"github.com/dmitrymomot/dashboard/core/response"
	"github.com/dmitrymomot/dashboard/core/router"
	"github.com/dmitrymomot/dashboard/middleware"
)

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	serve := func(mw handler.Middleware[*router.Context]) http.Header {
		r := router.New[*router.Context]()
		r.Use(mw)
		r.Get("/", func(ctx *router.Context) handler.Response {
			return response.String("ok")
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		return w.Header()
	}

	t.Run("development", func(t *testing.T) {
		t.Parallel()
		h := serve(middleware.SecurityHeaders[*router.Context](false))
		assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
		assert.Equal(t, "SAMEORIGIN", h.Get("X-Frame-Options"))
		assert.Empty(t, h.Get("Strict-Transport-Security"))
	})

	t.Run("production adds hsts", func(t *testing.T) {
		t.Parallel()
		h := serve(middleware.SecurityHeaders[*router.Context](true))
		assert.Contains(t, h.Get("Strict-Transport-Security"), "max-age=31536000")
	})

	t.Run("custom config", func(t *testing.T) {
		t.Parallel()
		h := serve(middleware.SecurityHeadersWithConfig[*router.Context](middleware.SecurityHeadersConfig{
			FrameOptions: "DENY",
		}))
		assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
		assert.Empty(t, h.Get("X-Content-Type-Options"))
	})
}
