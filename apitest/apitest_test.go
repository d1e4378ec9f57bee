package apitest_test

import (
	"context"
	"net/http"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/apidoc"
	"github.com/bjaus/apidoc/apitest"
	"github.com/bjaus/apidoc/router"
)

type noteDto struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func notesRouter() *router.Router {
	r := router.New(router.WithVersion("0.9.0"))
	v1 := r.Group("/v1")

	router.Get(v1, "/notes/{id}", func(_ context.Context, req *struct {
		ID string `path:"id"`
	}) (*noteDto, error) {
		if req.ID == "missing" {
			return nil, router.Error(http.StatusNotFound, "no such note")
		}
		return &noteDto{ID: req.ID, Text: "hello"}, nil
	}, router.WithDoc("Read a note"))
	router.Post(v1, "/notes", func(_ context.Context, req *noteDto) (*noteDto, error) {
		return req, nil
	}, router.WithStatus(http.StatusCreated))
	router.Delete(v1, "/notes/{id}", func(_ context.Context, _ *struct {
		ID string `path:"id"`
	}) (*router.Void, error) {
		return nil, nil
	})
	return r
}

func TestClient(t *testing.T) {
	t.Parallel()

	c := apitest.NewClient(t, notesRouter())

	got := apitest.Get[noteDto](t, c, "/v1/notes/n1")
	require.Equal(t, http.StatusOK, got.Status)
	require.NotNil(t, got.Body)
	assert.Equal(t, noteDto{ID: "n1", Text: "hello"}, *got.Body)

	missing := apitest.Get[noteDto](t, c, "/v1/notes/missing")
	assert.Equal(t, http.StatusNotFound, missing.Status)
	assert.Nil(t, missing.Body)
	require.NotNil(t, missing.Problem)
	assert.Equal(t, "no such note", missing.Problem.Detail)

	created := apitest.Post[noteDto, noteDto](t, c, "/v1/notes", &noteDto{ID: "n2", Text: "hi"})
	assert.Equal(t, http.StatusCreated, created.Status)
	assert.Equal(t, "hi", created.Body.Text)

	deleted := apitest.Delete[router.Void](t, c, "/v1/notes/n2")
	assert.Equal(t, http.StatusNoContent, deleted.Status)
	assert.Nil(t, deleted.Body)
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	api := apitest.Describe(t, notesRouter(), "/v1")
	assert.Equal(t, "0.9.0", api.ProjectVersion)
	apitest.RequireSorted(t, api)

	read := apitest.Endpoint(t, api.Versions["/v1"], http.MethodGet, "/v1/notes/{id}")
	assert.Equal(t, "Read a note", read.Description)
	assert.Equal(t, "noteDto", read.Response)
	require.Len(t, read.Parameters, 1)
	assert.Equal(t, apidoc.PathVariable, read.Parameters[0].SendAs)

	del := apitest.Endpoint(t, api.Versions["/v1"], http.MethodDelete, "/v1/notes/{id}")
	assert.Equal(t, "void", del.Response)
}

func TestGolden(t *testing.T) {
	t.Parallel()

	r := router.New(router.WithVersion("1.0.0"))
	router.Get(r.Group("/v1"), "/ping", func(_ context.Context, _ *router.Void) (*router.Void, error) {
		return nil, nil
	}, router.WithDoc("Liveness"))

	golden := `{
		"projectVersion": "1.0.0",
		"versions": {
			"/v1": {
				"endpoints": [{
					"uris": ["/v1/ping"],
					"methods": ["GET"],
					"description": "Liveness",
					"parameters": [],
					"response": "void"
				}],
				"dataTypes": {}
			}
		}
	}`
	fsys := fstest.MapFS{"ping.json": {Data: []byte(golden)}}

	apitest.Golden(t, apitest.Describe(t, r, "/v1"), fsys, "ping.json")
}
