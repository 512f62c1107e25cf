package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/dashboard/core/auth"
	"github.com/dmitrymomot/dashboard/core/cookie"
	"github.com/dmitrymomot/dashboard/core/health"
	"github.com/dmitrymomot/dashboard/core/logger"
	"github.com/dmitrymomot/dashboard/core/response"
	"github.com/dmitrymomot/dashboard/core/router"
	"github.com/dmitrymomot/dashboard/core/server"
	"github.com/dmitrymomot/dashboard/core/session"
	"github.com/dmitrymomot/dashboard/middleware"
)

// App wires the session gate, the auth endpoints and the dashboard pages.
type App struct {
	config  Config
	logger  *slog.Logger
	store   session.Store
	service *auth.Service
	auth    auth.Authenticator
	cookies *cookie.Manager
	router  router.Router[*Context]
	server  *server.Server
	closers []closer
}

type Option func(*App) error

func WithLogger(l *slog.Logger) Option {
	return func(a *App) error {
		if l == nil {
			return fmt.Errorf("%w: logger", ErrNilDependency)
		}
		a.logger = l
		return nil
	}
}

// WithStore uses store instead of connecting the configured backend.
func WithStore(store session.Store) Option {
	return func(a *App) error {
		if store == nil {
			return fmt.Errorf("%w: store", ErrNilDependency)
		}
		a.store = store
		return nil
	}
}

// WithAuthenticator overrides the authenticator used by the session gate.
func WithAuthenticator(au auth.Authenticator) Option {
	return func(a *App) error {
		if au == nil {
			return fmt.Errorf("%w: authenticator", ErrNilDependency)
		}
		a.auth = au
		return nil
	}
}

func WithServer(s *server.Server) Option {
	return func(a *App) error {
		if s == nil {
			return fmt.Errorf("%w: server", ErrNilDependency)
		}
		a.server = s
		return nil
	}
}

// New builds the App. In the in-process topology it connects the session
// store and serves /auth itself; with AUTH_URL set it delegates to the
// remote auth service.
func New(ctx context.Context, cfg Config, opts ...Option) (*App, error) {
	a := &App{config: cfg, logger: logger.Discard()}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	failureMode, err := middleware.ParseFailureMode(cfg.Session.FailureMode)
	if err != nil {
		return nil, errors.Join(ErrInvalidSetting, err)
	}

	if a.auth == nil && cfg.Remote() {
		client, err := auth.NewClient(cfg.AuthURL)
		if err != nil {
			return nil, err
		}
		a.auth = client
	}

	if !cfg.Remote() {
		if a.store == nil {
			store, closeFn, err := openStore(ctx, cfg, a.logger)
			if err != nil {
				return nil, err
			}
			a.store = store
			if closeFn != nil {
				a.closers = append(a.closers, closeFn)
			}
		}
		a.service = auth.NewService(a.store,
			auth.WithTTL(cfg.Session.TTL),
			auth.WithUsageTracking(cfg.Session.TrackUsage),
			auth.WithUsageTimeout(cfg.Session.UsageTimeout),
			auth.WithLogger(a.logger),
		)
		if a.auth == nil {
			a.auth = a.service
		}
	}

	a.cookies = cookie.NewFromConfig(cfg.Cookie)

	if a.server == nil {
		srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		a.server = srv
	}

	a.router = router.New[*Context](
		router.WithContextFactory[*Context](newContext),
		router.WithErrorHandler[*Context](response.JSONErrorHandler[*Context]),
		router.WithLogger[*Context](a.logger),
	)
	a.routes(failureMode)

	return a, nil
}

func (a *App) routes(failureMode middleware.FailureMode) {
	r := a.router
	r.Use(
		middleware.RequestID[*Context](),
		middleware.Logging[*Context](a.logger),
		middleware.SecurityHeaders[*Context](a.config.IsProduction()),
		middleware.SessionGate[*Context](middleware.SessionGateConfig{
			Auth:            a.auth,
			Cookies:         a.cookies,
			CookieName:      a.config.Session.CookieName,
			MaxAge:          a.config.Session.CookieMaxAge,
			Secure:          a.config.IsProduction() || a.config.Cookie.Secure,
			ProtectedRoutes: a.config.Session.ProtectedRoutes,
			FailureMode:     failureMode,
			Logger:          a.logger,
		}),
	)

	r.Get("/", page("Overview"))
	r.Get("/data", page("Data"))
	r.Get("/map", page("Map"))

	r.Get("/live", health.Liveness[*Context])

	var checks []func(context.Context) error
	if a.service != nil {
		checks = append(checks, a.service.Healthcheck)

		r.Post("/auth", auth.IssueHandler[*Context](a.service, a.logger))
		r.Get("/auth", auth.ValidateHandler[*Context](a.service, a.logger))

		r.With(middleware.BearerWithConfig[*Context](middleware.BearerConfig{
			Auth:   a.service,
			Logger: a.logger,
		})).Get("/api/session", a.sessionHandler)
	}
	r.Get("/ready", health.Readiness[*Context](a.logger, checks...))
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run serves HTTP until ctx is done, sweeping expired sessions in the
// background when the store needs it. Backend connections are closed on
// return.
func (a *App) Run(ctx context.Context) error {
	defer a.Close(context.WithoutCancel(ctx))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(gctx, a.router))

	if sw, ok := a.store.(session.Sweeper); ok && a.service != nil {
		g.Go(session.Cleanup(gctx, sw, a.config.Session.CleanupInterval, a.logger))
	}

	return g.Wait()
}

// Close releases backend connections.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for _, c := range a.closers {
		if err := c(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if err := errors.Join(errs...); err != nil {
		a.logger.ErrorContext(ctx, "failed to close session store", logger.Error(err))
		return err
	}
	return nil
}
