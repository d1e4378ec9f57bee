// Package apitest provides typed test helpers for routers and their API
// documentation.
package apitest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/bjaus/apidoc"
	"github.com/bjaus/apidoc/router"
)

// Client wraps an httptest.Server for convenient API testing.
type Client struct {
	Server *httptest.Server
}

// NewClient creates a test client from a router.
func NewClient(t testing.TB, r *router.Router) *Client {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &Client{Server: srv}
}

// Response holds a decoded API response. Problem is set instead of Body
// when the server answered with a problem detail.
type Response[T any] struct {
	Status  int
	Headers http.Header
	Body    *T
	Problem *router.ProblemDetail
}

// Get sends a typed GET request.
func Get[Resp any](t testing.TB, c *Client, path string) *Response[Resp] {
	t.Helper()
	return do[Resp](t, c, http.MethodGet, path, nil)
}

// Post sends a typed POST request with a JSON body.
func Post[Req, Resp any](t testing.TB, c *Client, path string, body *Req) *Response[Resp] {
	t.Helper()
	return do[Resp](t, c, http.MethodPost, path, body)
}

// Put sends a typed PUT request with a JSON body.
func Put[Req, Resp any](t testing.TB, c *Client, path string, body *Req) *Response[Resp] {
	t.Helper()
	return do[Resp](t, c, http.MethodPut, path, body)
}

// Delete sends a typed DELETE request.
func Delete[Resp any](t testing.TB, c *Client, path string) *Response[Resp] {
	t.Helper()
	return do[Resp](t, c, http.MethodDelete, path, nil)
}

func do[Resp any](t testing.TB, c *Client, method, path string, body any) *Response[Resp] {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("apitest: marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, c.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("apitest: create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("apitest: execute request: %v", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			t.Errorf("apitest: close body: %v", closeErr)
		}
	}()

	result := &Response[Resp]{
		Status:  resp.StatusCode,
		Headers: resp.Header,
	}
	if resp.StatusCode == http.StatusNoContent {
		return result
	}

	var target any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/problem+json") {
		result.Problem = new(router.ProblemDetail)
		target = result.Problem
	} else {
		result.Body = new(Resp)
		target = result.Body
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("apitest: decode response: %v", err)
	}
	return result
}

// Describe builds the documentation of reg for the given API versions and
// fails the test on error.
func Describe(t testing.TB, reg apidoc.Registry, versions ...string) apidoc.APIVersions {
	t.Helper()

	version := ""
	if r, ok := reg.(*router.Router); ok {
		version = r.Version()
	}

	in, err := apidoc.New(version, reg, versions, apidoc.WithLogger(slog.New(slog.DiscardHandler)))
	if err != nil {
		t.Fatalf("apitest: describe: %v", err)
	}
	return in.KnownAPI()
}

// Endpoint returns the endpoint of info whose first URI is uri and that
// accepts method. It fails the test when there is none.
func Endpoint(t testing.TB, info apidoc.EndpointsInfo, method, uri string) apidoc.EndpointInfo {
	t.Helper()

	for _, e := range info.Endpoints {
		if len(e.URIs) > 0 && e.URIs[0] == uri && slices.Contains(e.Methods, method) {
			return e
		}
	}
	t.Fatalf("apitest: no endpoint %s %s", method, uri)
	return apidoc.EndpointInfo{}
}

// RequireSorted fails the test unless the endpoints of every version are
// ordered by their first URI.
func RequireSorted(t testing.TB, api apidoc.APIVersions) {
	t.Helper()

	for version, info := range api.Versions {
		sorted := slices.IsSortedFunc(info.Endpoints, func(a, b apidoc.EndpointInfo) int {
			return strings.Compare(a.URIs[0], b.URIs[0])
		})
		if !sorted {
			t.Fatalf("apitest: endpoints of %s are not sorted by uri", version)
		}
	}
}

// Golden compares the JSON rendering of api with the file at path in fsys.
// The comparison ignores insignificant whitespace.
func Golden(t testing.TB, api apidoc.APIVersions, fsys fs.FS, path string) {
	t.Helper()

	want, err := fs.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("apitest: read golden: %v", err)
	}

	var got bytes.Buffer
	if err := api.WriteJSON(&got); err != nil {
		t.Fatalf("apitest: render: %v", err)
	}

	var wantBuf, gotBuf bytes.Buffer
	if err := json.Compact(&wantBuf, want); err != nil {
		t.Fatalf("apitest: golden is not json: %v", err)
	}
	if err := json.Compact(&gotBuf, got.Bytes()); err != nil {
		t.Fatalf("apitest: render is not json: %v", err)
	}
	if !bytes.Equal(wantBuf.Bytes(), gotBuf.Bytes()) {
		t.Errorf("apitest: %s differs from rendered documentation:\n%s", path, got.String())
	}
}
