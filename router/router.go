package router

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/bjaus/apidoc"
)

// Router is the central type that holds routes, middleware, and
// configuration. It implements http.Handler and apidoc.Registry.
type Router struct {
	mux        *http.ServeMux
	middleware []Middleware
	routes     []routeInfo

	version string
	docs    *apidoc.Docs
	logger  *slog.Logger

	validator    Validator
	errorHandler ErrorHandler

	mu sync.Mutex
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithVersion sets the project version reported with the documentation.
func WithVersion(version string) RouterOption {
	return func(r *Router) {
		r.version = version
	}
}

// WithDocs sets the documentation side table consulted when describing
// request and response types.
func WithDocs(docs *apidoc.Docs) RouterOption {
	return func(r *Router) {
		r.docs = docs
	}
}

// WithLogger sets the logger used by the router itself.
func WithLogger(logger *slog.Logger) RouterOption {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithValidator sets a global request validator.
func WithValidator(v Validator) RouterOption {
	return func(r *Router) {
		r.validator = v
	}
}

// ErrorHandler is a custom error response writer.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// WithErrorHandler sets a custom error handler for the router.
func WithErrorHandler(h ErrorHandler) RouterOption {
	return func(r *Router) {
		r.errorHandler = h
	}
}

// New creates a new Router with the given options.
func New(opts ...RouterOption) *Router {
	r := &Router{
		mux:    http.NewServeMux(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Version returns the project version set with WithVersion.
func (r *Router) Version() string { return r.version }

// Use adds middleware to the router. Middleware is applied in the order added.
func (r *Router) Use(mw ...Middleware) {
	r.middleware = append(r.middleware, mw...)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	applyMiddleware(r.mux, r.middleware).ServeHTTP(w, req)
}

// ListenAndServe starts an HTTP server on the given address.
// It blocks until the context is cancelled, then shuts down gracefully.
func (r *Router) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	r.logger.Info("listening", "addr", addr, "routes", len(r.routes))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// addRoute registers every method and pattern of ri with the mux and keeps
// ri for documentation. Global middleware is applied in ServeHTTP; only
// group middleware is baked into ri.handler.
func (r *Router) addRoute(ri routeInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := markRoute(ri, ri.handler)
	for _, pattern := range ri.patterns {
		for _, method := range ri.methods {
			r.mux.Handle(method+" "+pattern, h)
		}
	}
	r.routes = append(r.routes, ri)
}
