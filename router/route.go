package router

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/bjaus/apidoc"
)

// routeInfo holds metadata for a registered route, used for both request
// dispatch and documentation.
type routeInfo struct {
	methods  []string
	patterns []string
	// mappings are the route-grouping values of the declaring group.
	mappings []string

	doc    *apidoc.Doc
	status int

	reqType  reflect.Type
	respType reflect.Type
	raw      bool

	handler http.Handler
}

// name identifies the route in logs and errors, e.g. "GET,HEAD /v1/users".
func (ri *routeInfo) name() string {
	pattern := ""
	if len(ri.patterns) > 0 {
		pattern = ri.patterns[0]
	}
	return strings.Join(ri.methods, ",") + " " + pattern
}

// RouteOption configures a route at registration time.
type RouteOption func(*routeInfo)

// WithStatus sets the default HTTP status code for the response.
func WithStatus(code int) RouteOption {
	return func(ri *routeInfo) {
		ri.status = code
	}
}

// WithDoc documents the route. Routes without it are reported as
// undocumented.
func WithDoc(description string, help ...string) RouteOption {
	return func(ri *routeInfo) {
		ri.doc = &apidoc.Doc{Description: description, Help: help}
	}
}
