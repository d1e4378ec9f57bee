package apidoc_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/apidoc"
)

func TestReflectType_kinds(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		typ        apidoc.Type
		primitive  bool
		core       bool
		collection bool
	}{
		"int64":           {typ: typeOf[int64](), primitive: true, core: true},
		"string":          {typ: typeOf[string](), primitive: true, core: true},
		"error":           {typ: typeOf[error](), core: true},
		"any":             {typ: typeOf[any](), primitive: true},
		"func":            {typ: typeOf[func() int](), primitive: true},
		"chan":            {typ: typeOf[chan int](), primitive: true},
		"named string":    {typ: typeOf[Status]()},
		"struct":          {typ: typeOf[UserDto]()},
		"pointer":         {typ: typeOf[*UserDto](), collection: true},
		"slice":           {typ: typeOf[[]UserDto](), collection: true},
		"array":           {typ: typeOf[[2]UserDto](), collection: true},
		"map":             {typ: typeOf[map[string]UserDto](), collection: true},
		"named slice":     {typ: typeOf[TagList](), collection: true},
		"stdlib struct":   {typ: typeOf[time.Time]()},
		"stdlib duration": {typ: typeOf[time.Duration]()},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.primitive, tt.typ.Primitive(), "primitive")
			assert.Equal(t, tt.core, tt.typ.Core(), "core")
			assert.Equal(t, tt.collection, tt.typ.Collection(), "collection")
		})
	}
}

func TestReflectType_elemAndTypeArgs(t *testing.T) {
	t.Parallel()

	slice := typeOf[[]UserDto]()
	require.NotNil(t, slice.Elem())
	assert.Equal(t, typeOf[UserDto]().Key(), slice.Elem().Key())
	assert.Empty(t, slice.TypeArgs())

	m := typeOf[map[string]AddressDto]()
	args := m.TypeArgs()
	require.Len(t, args, 2)
	assert.Equal(t, "string", args[0].Key())
	assert.Equal(t, typeOf[AddressDto]().Key(), args[1].Key())
	assert.Equal(t, args[1].Key(), m.Elem().Key())

	assert.Nil(t, typeOf[UserDto]().Elem())
}

func TestReflectType_key(t *testing.T) {
	t.Parallel()

	const pkg = "github.com/bjaus/apidoc_test"

	assert.Equal(t, pkg+".UserDto", typeOf[UserDto]().Key())
	assert.Equal(t, "*"+pkg+".UserDto", typeOf[*UserDto]().Key())
	assert.Equal(t, "[]"+pkg+".UserDto", typeOf[[]UserDto]().Key())
	assert.Equal(t, "[3]int", typeOf[[3]int]().Key())
	assert.Equal(t, "map[string]"+pkg+".AddressDto", typeOf[map[string]AddressDto]().Key())
	assert.Equal(t, "error", typeOf[error]().Key())

	// Instantiations with different type arguments are different types.
	assert.NotEqual(t, typeOf[Page[UserDto]]().Key(), typeOf[Page[AddressDto]]().Key())
	assert.Equal(t, typeOf[Page[UserDto]]().Key(), apidoc.TypeKey(reflect.TypeFor[Page[UserDto]]()))
}

func TestReflectType_fields(t *testing.T) {
	t.Parallel()

	fields, err := typeOf[Order]().Fields()
	require.NoError(t, err)

	byName := make(map[string]apidoc.Field)
	for _, f := range fields {
		byName[f.Name] = f
	}

	assert.Contains(t, byName, "created_by", "promoted from embedded struct")
	assert.Contains(t, byName, "id")
	assert.Contains(t, byName, "shipping")
	assert.Contains(t, byName, "lines")
	assert.Contains(t, byName, "callbacks")
	assert.NotContains(t, byName, "Audit")
	assert.NotContains(t, byName, "internal")
	assert.NotContains(t, byName, "Ignored")
	assert.NotContains(t, byName, "-")

	id := byName["id"]
	require.NotNil(t, id.Doc)
	assert.Equal(t, "Order number", id.Doc.Description)
	assert.Equal(t, []string{"Assigned by the store", "Never reused"}, id.Doc.Help)
	assert.Nil(t, byName["shipping"].Doc)
}

func TestReflectType_fieldsOfNonStruct(t *testing.T) {
	t.Parallel()

	fields, err := typeOf[Status]().Fields()
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestReflectType_docPrecedence(t *testing.T) {
	t.Parallel()

	docs := apidoc.NewDocs()
	apidoc.DocumentType[AddressDto](docs, "Postal address", "Used for shipping")
	apidoc.DocumentField[Order](docs, "id", "Overridden")
	p := apidoc.NewReflectProvider(docs)

	doc, ok := apidoc.TypeFor[AddressDto](p).Doc()
	require.True(t, ok)
	assert.Equal(t, "Postal address", doc.Description)
	assert.Equal(t, []string{"Used for shipping"}, doc.Help)

	doc, ok = apidoc.TypeFor[*AddressDto](p).Doc()
	require.True(t, ok, "pointer takes element doc")
	assert.Equal(t, "Postal address", doc.Description)

	doc, ok = apidoc.TypeFor[Status](p).Doc()
	require.True(t, ok, "Documenter")
	assert.Equal(t, "Lifecycle state", doc.Description)

	_, ok = apidoc.TypeFor[UserDto](p).Doc()
	assert.False(t, ok)

	fields, err := apidoc.TypeFor[Order](p).Fields()
	require.NoError(t, err)
	for _, f := range fields {
		if f.Name == "id" {
			require.NotNil(t, f.Doc)
			assert.Equal(t, "Overridden", f.Doc.Description, "side table beats struct tag")
			assert.Empty(t, f.Doc.Help)
		}
	}
}

func TestReflectType_docOfRecursivePointer(t *testing.T) {
	t.Parallel()

	_, ok := typeOf[Chain]().Doc()
	assert.False(t, ok)

	docs := apidoc.NewDocs()
	apidoc.DocumentType[Chain](docs, "Linked cell")
	p := apidoc.NewReflectProvider(docs)

	doc, ok := apidoc.TypeFor[Chain](p).Doc()
	require.True(t, ok)
	assert.Equal(t, "Linked cell", doc.Description)

	doc, ok = apidoc.TypeFor[*Chain](p).Doc()
	require.True(t, ok)
	assert.Equal(t, "Linked cell", doc.Description)
}

func TestReflectType_unknownDocumentedField(t *testing.T) {
	t.Parallel()

	docs := apidoc.NewDocs()
	apidoc.DocumentField[UserDto](docs, "nmae", "typo")
	p := apidoc.NewReflectProvider(docs)

	_, err := apidoc.TypeFor[UserDto](p).Fields()
	require.ErrorIs(t, err, apidoc.ErrUnknownField)
	assert.Contains(t, err.Error(), "UserDto.nmae")
}

func TestReflectType_carrier(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		typ  apidoc.Type
		want bool
	}{
		"request pointer":   {typ: typeOf[*http.Request](), want: true},
		"request value":     {typ: typeOf[http.Request](), want: true},
		"response writer":   {typ: typeOf[http.ResponseWriter](), want: true},
		"recorder":          {typ: typeOf[*httptest.ResponseRecorder](), want: true},
		"framework wrapper": {typ: typeOf[rawRequest](), want: true},
		"context":           {typ: typeOf[context.Context](), want: false},
		"dto":               {typ: typeOf[UserDto](), want: false},
		"string":            {typ: typeOf[string](), want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.typ.Carrier())
		})
	}
}

func TestTagDoc(t *testing.T) {
	t.Parallel()

	doc, ok := apidoc.TagDoc(`doc:"Page size" help:"max 100 | default 20"`)
	require.True(t, ok)
	assert.Equal(t, "Page size", doc.Description)
	assert.Equal(t, []string{"max 100", "default 20"}, doc.Help)

	doc, ok = apidoc.TagDoc(`doc:""`)
	require.True(t, ok, "an empty doc tag is still documentation")
	assert.Empty(t, doc.Description)
	assert.Nil(t, doc.Help)

	_, ok = apidoc.TagDoc(`json:"name"`)
	assert.False(t, ok)
}

func TestIsStandardPackage(t *testing.T) {
	t.Parallel()

	assert.True(t, apidoc.IsStandardPackage("time"))
	assert.True(t, apidoc.IsStandardPackage("net/http"))
	assert.False(t, apidoc.IsStandardPackage("main"))
	assert.False(t, apidoc.IsStandardPackage("github.com/bjaus/apidoc"))
	assert.False(t, apidoc.IsStandardPackage("gopkg.in/yaml.v3"))
}
