package cookie

import (
	"errors"
	"net/http"
	"time"
)

// MaxCookieSize is the maximum serialized size of a cookie (4KB).
const MaxCookieSize = 4096

// Manager creates and reads cookies using shared attribute defaults.
type Manager struct {
	defaults Options
	maxSize  int
}

// New creates a Manager. Defaults are path "/", HttpOnly and SameSite=Lax.
func New(opts ...Option) *Manager {
	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{
		defaults: applyOptions(defaults, opts),
		maxSize:  MaxCookieSize,
	}
}

// Defaults returns the manager's attribute defaults.
func (m *Manager) Defaults() Options {
	return m.defaults
}

// Cookie builds a cookie with the manager defaults overridden by opts.
func (m *Manager) Cookie(name, value string, opts ...Option) (*http.Cookie, error) {
	if name == "" {
		return nil, ErrInvalidName
	}

	o := applyOptions(m.defaults, opts)
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	}
	if o.MaxAge > 0 {
		c.Expires = time.Now().Add(time.Duration(o.MaxAge) * time.Second).UTC()
	}

	if err := c.Valid(); err != nil {
		return nil, errors.Join(ErrInvalidName, err)
	}

	if size := len(c.String()); size > m.maxSize {
		return nil, ErrCookieTooLarge{Name: name, Size: size, Max: m.maxSize}
	}

	return c, nil
}

// Get returns the value of the named cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}
