package router

import (
	"net/http"
	"net/url"
	"strings"
)

// Matrix parameters ride on path segments: "/cars/list;color=red,blue;year=2012".
// The segment must be matched by a wildcard, since the mux compares literal
// segments verbatim.

// matrixValues collects the matrix parameters of every segment of path.
// Comma-separated values become multiple values.
func matrixValues(path string) url.Values {
	values := make(url.Values)
	for segment := range strings.SplitSeq(path, "/") {
		_, params, ok := strings.Cut(segment, ";")
		if !ok {
			continue
		}
		for param := range strings.SplitSeq(params, ";") {
			name, value, _ := strings.Cut(param, "=")
			if name == "" {
				continue
			}
			for v := range strings.SplitSeq(value, ",") {
				values.Add(name, v)
			}
		}
	}
	return values
}

// pathValue returns the path wildcard name without any matrix parameters.
func pathValue(r *http.Request, name string) string {
	val, _, _ := strings.Cut(r.PathValue(name), ";")
	return val
}
