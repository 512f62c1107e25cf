package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dashboard/core/cookie"
)

func TestManagerCookie(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		m := cookie.New()

		c, err := m.Cookie("sid", "abc")
		require.NoError(t, err)
		assert.Equal(t, "sid", c.Name)
		assert.Equal(t, "abc", c.Value)
		assert.Equal(t, "/", c.Path)
		assert.True(t, c.HttpOnly)
		assert.False(t, c.Secure)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		assert.Zero(t, c.MaxAge)
		assert.True(t, c.Expires.IsZero())
	})

	t.Run("manager options", func(t *testing.T) {
		t.Parallel()
		m := cookie.New(cookie.WithSecure(true), cookie.WithMaxAge(604800))

		c, err := m.Cookie("sid", "abc")
		require.NoError(t, err)
		assert.True(t, c.Secure)
		assert.Equal(t, 604800, c.MaxAge)
		assert.False(t, c.Expires.IsZero())
		assert.Contains(t, c.String(), "Max-Age=604800")
	})

	t.Run("per call override", func(t *testing.T) {
		t.Parallel()
		m := cookie.New(cookie.WithPath("/app"))

		c, err := m.Cookie("sid", "abc", cookie.WithPath("/"), cookie.WithDomain("example.com"))
		require.NoError(t, err)
		assert.Equal(t, "/", c.Path)
		assert.Equal(t, "example.com", c.Domain)
		assert.Equal(t, "/app", m.Defaults().Path)
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.New().Cookie("", "abc")
		assert.ErrorIs(t, err, cookie.ErrInvalidName)
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.New().Cookie("bad name", "abc")
		assert.ErrorIs(t, err, cookie.ErrInvalidName)
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.New().Cookie("big", strings.Repeat("a", cookie.MaxCookieSize))
		var tooLarge cookie.ErrCookieTooLarge
		require.ErrorAs(t, err, &tooLarge)
		assert.Equal(t, "big", tooLarge.Name)
	})
}

func TestManagerGet(t *testing.T) {
	t.Parallel()

	m := cookie.New()
	c, err := m.Cookie("sid", "abc")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)

	v, err := m.Get(r, "sid")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	_, err = m.Get(r, "other")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	m := cookie.NewFromConfig(cookie.Config{
		Path:     "/",
		MaxAge:   60,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxSize:  64,
	}, cookie.WithMaxAge(120))

	d := m.Defaults()
	assert.Equal(t, 120, d.MaxAge)
	assert.True(t, d.Secure)
	assert.Equal(t, http.SameSiteStrictMode, d.SameSite)

	_, err := m.Cookie("sid", strings.Repeat("x", 64))
	var tooLarge cookie.ErrCookieTooLarge
	assert.ErrorAs(t, err, &tooLarge)
}
