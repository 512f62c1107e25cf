package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dashboard/core/handler"
	"github.com/dmitrymomot/dashboard/core/logger"
	"github.com/dmitrymomot/dashboard/core/response"
	"github.com/dmitrymomot/dashboard/core/router"
	"github.com/dmitrymomot/dashboard/middleware"
)

func TestLogging(t *testing.T) {
	t.Parallel()

	newRouter := func(buf *bytes.Buffer) router.Router[*router.Context] {
		log := logger.New(
			logger.WithJSONFormatter(),
			logger.WithOutput(buf),
			logger.WithContextExtractors(middleware.RequestIDExtractor()),
		)
		r := router.New[*router.Context]()
		r.Use(
			middleware.RequestID[*router.Context](),
			middleware.Logging[*router.Context](log),
		)
		r.Get("/ok", func(ctx *router.Context) handler.Response {
			return response.String("ok")
		})
		r.Get("/fail", func(ctx *router.Context) handler.Response {
			return response.Error(response.ErrBadGateway)
		})
		return r
	}

	decode := func(t *testing.T, buf *bytes.Buffer) map[string]any {
		t.Helper()
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		return entry
	}

	t.Run("logs successful request", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		r := newRouter(&buf)

		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("X-Forwarded-For", "198.51.100.2")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		entry := decode(t, &buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "request completed", entry["msg"])
		assert.Equal(t, http.MethodGet, entry["method"])
		assert.Equal(t, "/ok", entry["path"])
		assert.EqualValues(t, http.StatusOK, entry["status"])
		assert.Equal(t, "198.51.100.2", entry["client_ip"])
		assert.Equal(t, w.Header().Get("X-Request-ID"), entry["request_id"])
	})

	t.Run("logs failed request at error", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		r := newRouter(&buf)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		entry := decode(t, &buf)
		assert.Equal(t, "ERROR", entry["level"])
		assert.EqualValues(t, http.StatusBadGateway, entry["status"])
	})
}
