package router

import (
	"context"
	"net/http"
)

// Void is used as a type parameter when a request has no parameters or body,
// or a response has no body (results in 204 No Content).
type Void struct{}

// Handler is the core typed handler signature. The router owns
// serialization; handlers never see http.ResponseWriter or *http.Request.
type Handler[Req, Resp any] func(ctx context.Context, req *Req) (*Resp, error)

// RawHandler is an escape hatch for anything that needs direct access to the
// underlying http primitives.
type RawHandler func(w http.ResponseWriter, r *http.Request)

// RawRequest can be embedded in a request type to get access to the
// underlying *http.Request. It is request plumbing and is left out of the
// documentation.
type RawRequest struct {
	Request *http.Request
}

// HTTPRequest implements apidoc.RequestCarrier.
func (r RawRequest) HTTPRequest() *http.Request { return r.Request }
