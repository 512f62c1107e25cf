package router

import (
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/dashboard/core/handler"
)

// mux is the private implementation of Router.
// Groups share the underlying ServeMux and route table with their parent.
type mux[C handler.Context] struct {
	std          *http.ServeMux
	table        *routeTable
	parent       *mux[C]
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request) C
	logger       *slog.Logger
	mu           sync.RWMutex
}

type routeTable struct {
	mu     sync.Mutex
	routes []Route
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		std:          http.NewServeMux(),
		table:        &routeTable{},
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(NewContext(w, r)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	return m
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.std.ServeHTTP(newResponseWriter(w), r)
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.Method(pattern, h, http.MethodGet)
}

func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.Method(pattern, h, http.MethodPost)
}

func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.Method(pattern, h, http.MethodPut)
}

func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.Method(pattern, h, http.MethodDelete)
}

func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.Method(pattern, h, http.MethodPatch)
}

func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.register("", pattern, h)
}

func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		m.register("", pattern, h)
		return
	}
	for _, method := range methods {
		method = strings.ToUpper(method)
		if _, ok := methodMap[method]; !ok {
			panic(ErrInvalidMethod)
		}
		m.register(method, pattern, h)
	}
}

func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.middlewares = append(m.middlewares, middlewares...)
}

func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	child := m.child()
	child.middlewares = append(child.middlewares, middlewares...)
	return child
}

func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	child := m.child()
	if fn != nil {
		fn(child)
	}
	return child
}

// Routes returns the registered routes in registration order.
func (m *mux[C]) Routes() []Route {
	m.table.mu.Lock()
	defer m.table.mu.Unlock()
	return slices.Clone(m.table.routes)
}

func (m *mux[C]) child() *mux[C] {
	return &mux[C]{
		std:          m.std,
		table:        m.table,
		parent:       m,
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
	}
}

// stack collects middleware from the root down to m.
func (m *mux[C]) stack() []handler.Middleware[C] {
	var parent []handler.Middleware[C]
	if m.parent != nil {
		parent = m.parent.stack()
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append(parent, m.middlewares...)
}

func (m *mux[C]) register(method, pattern string, h handler.HandlerFunc[C]) {
	if h == nil {
		panic(ErrNilHandler)
	}
	if pattern == "" || pattern[0] != '/' {
		panic(ErrInvalidPattern)
	}

	stdPattern := pattern
	if pattern == "/" {
		stdPattern = "/{$}"
	}
	if method != "" {
		stdPattern = method + " " + stdPattern
	}

	m.std.HandleFunc(stdPattern, func(w http.ResponseWriter, r *http.Request) {
		m.serve(w, r, h)
	})

	m.table.mu.Lock()
	m.table.routes = append(m.table.routes, Route{Method: method, Pattern: pattern})
	m.table.mu.Unlock()
}

func (m *mux[C]) serve(w http.ResponseWriter, r *http.Request, h handler.HandlerFunc[C]) {
	ctx := m.newContext(w, r)

	defer func() {
		if p := recover(); p != nil {
			perr := &panicError{value: p, stack: debug.Stack()}
			if ww, ok := w.(*responseWriter); ok && ww.Written() {
				m.logger.Error("panic after response written",
					"value", perr.value,
					"stack", string(perr.stack),
					"path", r.URL.Path,
					"method", r.Method,
					"status", ww.Status(),
				)
				return
			}
			m.errorHandler(ctx, perr)
		}
	}()

	resp := chain(m.stack(), h)(ctx)
	if resp == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	// The handler may have replaced the request (SetValue), so render with
	// the context's current request.
	if err := resp(ctx.ResponseWriter(), ctx.Request()); err != nil {
		m.errorHandler(ctx, err)
	}
}

var methodMap = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodOptions: {},
	http.MethodConnect: {},
	http.MethodTrace:   {},
}
