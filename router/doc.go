// Package router is a generics-first HTTP router whose registered handlers
// double as API documentation. Request parameters, bodies, and responses are
// Go types; the router binds them from the request and describes them to
// package apidoc through the apidoc.Registry interface.
//
// The core handler signature removes http.ResponseWriter and *http.Request:
//
//	type Handler[Req, Resp any] func(ctx context.Context, req *Req) (*Resp, error)
//
// Routes are grouped under versioned prefixes. Every prefix of a group is a
// route-grouping value, so the group's handlers are documented under that
// API version:
//
//	r := router.New(router.WithVersion("1.4.0"))
//	v1 := r.Group("/v1", router.WithGroupPrefixes("/api/v1"))
//	router.Get(v1, "/users/{id}", getUser, router.WithDoc("Fetch a user"))
//
// Request types bind fields with struct tags and take a body from a Body
// field:
//
//	type UpdateUserReq struct {
//	    ID    int64  `path:"id" doc:"User id"`
//	    Trace string `header:"X-Trace-Id"`
//	    Color string `matrix:"color"`
//	    Body  UserDto
//	}
//
// Build the documentation once the routes are registered:
//
//	in, err := apidoc.New(r.Version(), r, []string{"/v1"})
package router
