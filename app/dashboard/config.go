package dashboard

import (
	"time"

	"github.com/dmitrymomot/dashboard/core/cookie"
	"github.com/dmitrymomot/dashboard/core/server"
	"github.com/dmitrymomot/dashboard/integration/database/dynamodb"
	"github.com/dmitrymomot/dashboard/integration/database/mongo"
	"github.com/dmitrymomot/dashboard/integration/database/pg"
	"github.com/dmitrymomot/dashboard/integration/database/redis"
)

// Config is the process configuration, loaded from the environment.
type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"dashboard"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// AuthURL switches to the remote topology: sessions are validated and
	// issued by the auth service at this base URL.
	AuthURL string `env:"AUTH_URL"`

	Server  server.Config
	Cookie  cookie.Config
	Session SessionConfig

	DynamoDB dynamodb.Config
	Redis    redis.Config
	PG       pg.Config
	Mongo    mongo.Config
}

// SessionConfig controls session issuance and the session gate.
type SessionConfig struct {
	Store           string        `env:"SESSION_STORE" envDefault:"memory"`
	TTL             time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	CookieName      string        `env:"SESSION_COOKIE_NAME" envDefault:"sid"`
	CookieMaxAge    int           `env:"SESSION_COOKIE_MAX_AGE" envDefault:"604800"`
	ProtectedRoutes []string      `env:"SESSION_PROTECTED_ROUTES" envDefault:"/,/data,/map" envSeparator:","`
	FailureMode     string        `env:"SESSION_FAILURE_MODE" envDefault:"degrade"`
	TrackUsage      bool          `env:"SESSION_TRACK_USAGE" envDefault:"true"`
	UsageTimeout    time.Duration `env:"SESSION_USAGE_TIMEOUT" envDefault:"2s"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"`
}

// IsProduction reports whether APP_ENV is production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Remote reports whether sessions are handled by a separate auth service.
func (c Config) Remote() bool {
	return c.AuthURL != ""
}
