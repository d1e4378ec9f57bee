package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// accessRecord collects what the access log reports about one request. It
// wraps the ResponseWriter for status and size, and rides in the request
// context so the matched route can fill in its own metadata.
type accessRecord struct {
	http.ResponseWriter
	status   int
	size     int
	route    string
	versions []string
}

type accessKey struct{}

func (a *accessRecord) WriteHeader(code int) {
	a.status = code
	a.ResponseWriter.WriteHeader(code)
}

func (a *accessRecord) Write(b []byte) (int, error) {
	n, err := a.ResponseWriter.Write(b)
	a.size += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (a *accessRecord) Unwrap() http.ResponseWriter {
	return a.ResponseWriter
}

func (a *accessRecord) attrs(r *http.Request, latency time.Duration) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", a.status),
		slog.Duration("latency", latency),
		slog.Int("size", a.size),
		slog.String("remote", r.RemoteAddr),
	}
	if a.route != "" {
		attrs = append(attrs, slog.String("route", a.route))
	}
	if len(a.versions) > 0 {
		attrs = append(attrs, slog.Any("versions", a.versions))
	}
	if id := RequestIDFrom(r.Context()); id != "" {
		attrs = append(attrs, slog.String("request_id", id))
	}
	return attrs
}

// markRoute stamps the route's name and version mappings onto the access
// record of the request, if a Logger is in the chain.
func markRoute(ri routeInfo, next http.Handler) http.Handler {
	name := ri.name()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a, ok := r.Context().Value(accessKey{}).(*accessRecord); ok {
			a.route = name
			a.versions = ri.mappings
		}
		next.ServeHTTP(w, r)
	})
}

// Logger returns middleware that writes one access log line per request.
// Requests that reach a registered route also carry the route name and its
// API version mappings. Server errors are logged at error level.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &accessRecord{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), accessKey{}, rec)))

			level := slog.LevelInfo
			if rec.status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "request", rec.attrs(r, time.Since(start))...)
		})
	}
}
