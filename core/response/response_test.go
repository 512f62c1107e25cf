package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dashboard/core/handler"
	"github.com/dmitrymomot/dashboard/core/response"
	"github.com/dmitrymomot/dashboard/core/router"
)

func render(t *testing.T, resp handler.Response) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, resp(w, httptest.NewRequest(http.MethodGet, "/", nil)))
	return w
}

func TestTextResponses(t *testing.T) {
	t.Parallel()

	t.Run("string", func(t *testing.T) {
		t.Parallel()
		w := render(t, response.String("hello"))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "hello", w.Body.String())
	})

	t.Run("string with status", func(t *testing.T) {
		t.Parallel()
		w := render(t, response.StringWithStatus("nope", http.StatusTeapot))
		assert.Equal(t, http.StatusTeapot, w.Code)
	})

	t.Run("html", func(t *testing.T) {
		t.Parallel()
		w := render(t, response.HTML("<h1>Map</h1>"))
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "<h1>Map</h1>", w.Body.String())
	})

	t.Run("zero status defaults to ok", func(t *testing.T) {
		t.Parallel()
		w := render(t, response.HTMLWithStatus("", 0))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("no content", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusNoContent, render(t, response.NoContent()).Code)
	})
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("payload", func(t *testing.T) {
		t.Parallel()
		w := render(t, response.JSON(map[string]string{"sessionId": "abc"}))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"sessionId":"abc"}`, w.Body.String())
	})

	t.Run("custom status", func(t *testing.T) {
		t.Parallel()
		w := render(t, response.JSONWithStatus(map[string]string{"error": "x"}, http.StatusUnauthorized))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"x"}`, w.Body.String())
	})

	t.Run("nil with zero status", func(t *testing.T) {
		t.Parallel()
		w := render(t, response.JSONWithStatus(nil, 0))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestDecorators(t *testing.T) {
	t.Parallel()

	t.Run("cookie", func(t *testing.T) {
		t.Parallel()
		w := render(t, response.WithCookie(response.String("ok"), &http.Cookie{Name: "sid", Value: "v"}))
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "sid", cookies[0].Name)
		assert.Equal(t, "ok", w.Body.String())
	})

	t.Run("nil cookie keeps response", func(t *testing.T) {
		t.Parallel()
		w := render(t, response.WithCookie(response.String("ok"), nil))
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("headers", func(t *testing.T) {
		t.Parallel()
		w := render(t, response.WithHeaders(response.String("ok"), map[string]string{"X-Test": "1"}))
		assert.Equal(t, "1", w.Header().Get("X-Test"))
	})

	t.Run("cache", func(t *testing.T) {
		t.Parallel()
		w := render(t, response.WithCache(response.String("ok"), time.Hour))
		assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))

		w = render(t, response.WithCache(response.String("ok"), 0))
		assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))
	})
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	err := response.ErrServiceUnavailable.WithError(errors.New("store down"))
	assert.Equal(t, http.StatusServiceUnavailable, err.StatusCode())
	assert.Equal(t, "store down", err.Details["cause"])
	assert.Nil(t, response.ErrServiceUnavailable.Details, "catalogue entry must not be mutated")

	assert.Equal(t, "custom", response.NewHTTPError("custom").Error())
}

type teapotErr struct{}

func (teapotErr) Error() string   { return "short and stout" }
func (teapotErr) StatusCode() int { return http.StatusTeapot }

func TestJSONErrorHandler(t *testing.T) {
	t.Parallel()

	serveErr := func(err error) *httptest.ResponseRecorder {
		r := router.New[*router.Context](router.WithErrorHandler[*router.Context](response.JSONErrorHandler[*router.Context]))
		r.Get("/x", func(ctx *router.Context) handler.Response { return response.Error(err) })
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		return w
	}

	t.Run("http error", func(t *testing.T) {
		t.Parallel()
		w := serveErr(response.ErrUnauthorized)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var body response.HTTPError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "unauthorized", body.Code)
	})

	t.Run("plain error", func(t *testing.T) {
		t.Parallel()
		w := serveErr(errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), `"cause":"boom"`)
	})

	t.Run("status code error without catalogue entry", func(t *testing.T) {
		t.Parallel()
		w := serveErr(teapotErr{})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("wrapped http error", func(t *testing.T) {
		t.Parallel()
		w := serveErr(errors.Join(errors.New("ctx"), response.ErrServiceUnavailable))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestErrorHandlerPlainText(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context](router.WithErrorHandler[*router.Context](response.ErrorHandler[*router.Context]))
	r.Get("/x", func(ctx *router.Context) handler.Response { return response.Error(response.ErrNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", w.Body.String())
}
