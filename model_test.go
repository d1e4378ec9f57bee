package apidoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/apidoc"
)

func TestResolveSendAs(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		bindings []apidoc.Binding
		want     apidoc.SendAs
	}{
		"none":              {want: apidoc.Custom},
		"path":              {bindings: []apidoc.Binding{apidoc.BindPath}, want: apidoc.PathVariable},
		"body":              {bindings: []apidoc.Binding{apidoc.BindBody}, want: apidoc.RequestBody},
		"query":             {bindings: []apidoc.Binding{apidoc.BindQuery}, want: apidoc.RequestParameter},
		"header":            {bindings: []apidoc.Binding{apidoc.BindHeader}, want: apidoc.RequestParameter},
		"matrix":            {bindings: []apidoc.Binding{apidoc.BindMatrix}, want: apidoc.MatrixVariable},
		"cookie":            {bindings: []apidoc.Binding{apidoc.BindCookie}, want: apidoc.Custom},
		"query before path": {bindings: []apidoc.Binding{apidoc.BindQuery, apidoc.BindPath}, want: apidoc.PathVariable},
		"path and query":    {bindings: []apidoc.Binding{apidoc.BindPath, apidoc.BindQuery}, want: apidoc.PathVariable},
		"query and body":    {bindings: []apidoc.Binding{apidoc.BindQuery, apidoc.BindBody}, want: apidoc.RequestBody},
		"matrix and header": {bindings: []apidoc.Binding{apidoc.BindMatrix, apidoc.BindHeader}, want: apidoc.RequestParameter},
		"cookie and matrix": {bindings: []apidoc.Binding{apidoc.BindCookie, apidoc.BindMatrix}, want: apidoc.MatrixVariable},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p := apidoc.Parameter{Name: "p", Bindings: tt.bindings}
			assert.Equal(t, tt.want, apidoc.ResolveSendAs(p))
		})
	}
}

func TestSendAs_text(t *testing.T) {
	t.Parallel()

	for _, s := range []apidoc.SendAs{
		apidoc.Custom, apidoc.PathVariable, apidoc.RequestBody,
		apidoc.RequestParameter, apidoc.RequestHeader, apidoc.MatrixVariable,
	} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, s.String(), string(text))

		var back apidoc.SendAs
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}

	_, err := apidoc.SendAs(42).MarshalText()
	require.Error(t, err)
	assert.Equal(t, "SendAs(42)", apidoc.SendAs(42).String())

	var s apidoc.SendAs
	require.Error(t, s.UnmarshalText([]byte("Carrier")))
}

func TestHandlerMethod_MappedTo(t *testing.T) {
	t.Parallel()

	h := apidoc.HandlerMethod{Mappings: []string{"/v1", "/api/v1"}}
	assert.True(t, h.MappedTo("/v1"))
	assert.True(t, h.MappedTo("/api/v1"))
	assert.False(t, h.MappedTo("/v"))
	assert.False(t, h.MappedTo("/v1/"))
	assert.False(t, apidoc.HandlerMethod{}.MappedTo(""))
}

func TestValidateHandlers(t *testing.T) {
	t.Parallel()

	require.NoError(t, apidoc.ValidateHandlers(nil))
	require.NoError(t, apidoc.ValidateHandlers([]apidoc.HandlerMethod{{Patterns: []string{"/"}}}))

	err := apidoc.ValidateHandlers([]apidoc.HandlerMethod{{}, {Patterns: []string{"/"}}, {}})
	require.ErrorIs(t, err, apidoc.ErrInvalidHandler)
	assert.Contains(t, err.Error(), "handler #0")
	assert.Contains(t, err.Error(), "handler #2")
	assert.NotContains(t, err.Error(), "handler #1")
}

func TestShouldInspect(t *testing.T) {
	t.Parallel()

	assert.False(t, apidoc.ShouldInspect(typeOf[int]()))
	assert.False(t, apidoc.ShouldInspect(typeOf[string]()))
	assert.False(t, apidoc.ShouldInspect(typeOf[error]()))
	assert.False(t, apidoc.ShouldInspect(typeOf[[]string]()))
	assert.False(t, apidoc.ShouldInspect(typeOf[map[string]int]()))
	assert.True(t, apidoc.ShouldInspect(typeOf[UserDto]()))
	assert.True(t, apidoc.ShouldInspect(typeOf[[]*UserDto]()))
	assert.True(t, apidoc.ShouldInspect(typeOf[map[UserDto]int]()), "map keys count")
	assert.False(t, apidoc.ShouldInspect(typeOf[UserDto](), typeOf[UserDto]()))
	assert.False(t, apidoc.ShouldInspect(typeOf[[]UserDto](), typeOf[UserDto]()))
	assert.True(t, apidoc.ShouldInspect(typeOf[Page[UserDto]](), typeOf[Page[AddressDto]]()))
	assert.False(t, apidoc.ShouldInspect(nil))

	assert.False(t, apidoc.ShouldInspect(typeOf[Tree]()), "slice of itself")
	assert.False(t, apidoc.ShouldInspect(typeOf[Nested]()), "map of itself")
	assert.False(t, apidoc.ShouldInspect(typeOf[Chain]()), "pointer to itself")
	assert.True(t, apidoc.ShouldInspect(typeOf[Users]()))
	assert.False(t, apidoc.ShouldInspect(typeOf[Users](), typeOf[UserDto]()))
}
