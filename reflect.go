package apidoc

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"
)

// RequestCarrier is implemented by framework types that wrap the underlying
// *http.Request. Parameters of such types are plumbing and are not
// documented.
type RequestCarrier interface {
	HTTPRequest() *http.Request
}

var (
	requestType        = reflect.TypeFor[http.Request]()
	responseWriterType = reflect.TypeFor[http.ResponseWriter]()
	carrierType        = reflect.TypeFor[RequestCarrier]()
	documenterType     = reflect.TypeFor[Documenter]()
)

// ReflectProvider builds Types from reflect.Type values, reading
// documentation from a Docs side table, struct tags, and Documenter.
type ReflectProvider struct {
	docs *Docs
}

// NewReflectProvider returns a provider backed by docs. A nil docs is valid.
func NewReflectProvider(docs *Docs) *ReflectProvider {
	return &ReflectProvider{docs: docs}
}

// TypeOf wraps t. It returns nil for a nil t.
func (p *ReflectProvider) TypeOf(t reflect.Type) Type {
	if t == nil {
		return nil
	}
	return reflectType{t: t, p: p}
}

// TypeFor returns the Type of T.
func TypeFor[T any](p *ReflectProvider) Type {
	return p.TypeOf(reflect.TypeFor[T]())
}

type reflectType struct {
	t reflect.Type
	p *ReflectProvider
}

func (r reflectType) Key() string { return typeKey(r.t) }

func (r reflectType) String() string { return r.t.String() }

func (r reflectType) PkgPath() string { return r.t.PkgPath() }

func (r reflectType) Primitive() bool {
	//exhaustive:ignore
	switch r.t.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	case reflect.Interface:
		return r.t.Name() == ""
	case reflect.Bool, reflect.String, reflect.Uintptr,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return r.t.PkgPath() == ""
	default:
		return false
	}
}

func (r reflectType) Core() bool { return r.t.Name() != "" && r.t.PkgPath() == "" }

func (r reflectType) Collection() bool {
	//exhaustive:ignore
	switch r.t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map:
		return true
	default:
		return false
	}
}

func (r reflectType) Elem() Type {
	if !r.Collection() {
		return nil
	}
	return r.p.TypeOf(r.t.Elem())
}

func (r reflectType) TypeArgs() []Type {
	if r.t.Kind() == reflect.Map {
		return []Type{r.p.TypeOf(r.t.Key()), r.p.TypeOf(r.t.Elem())}
	}
	return nil
}

func (r reflectType) Fields() ([]Field, error) {
	var fields []Field
	declared := make(map[string]bool)

	if r.t.Kind() == reflect.Struct {
		for _, f := range reflect.VisibleFields(r.t) {
			if !f.IsExported() {
				continue
			}
			// Promoted fields of embedded structs are listed on their own.
			if f.Anonymous && deref(f.Type).Kind() == reflect.Struct {
				continue
			}
			name := JSONFieldName(f)
			if name == "-" {
				continue
			}
			declared[name] = true

			field := Field{Name: name, Type: r.p.TypeOf(f.Type)}
			if doc, ok := r.p.docs.fieldDoc(r.t, name); ok {
				field.Doc = &doc
			} else if doc, ok := TagDoc(f.Tag); ok {
				field.Doc = &doc
			}
			fields = append(fields, field)
		}
	}

	for _, name := range r.p.docs.documentedFields(r.t) {
		if !declared[name] {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, r.t, name)
		}
	}

	return fields, nil
}

func (r reflectType) Doc() (Doc, bool) {
	t := deref(r.t)
	if doc, ok := r.p.docs.typeDoc(t); ok {
		return doc, true
	}
	if t.Kind() == reflect.Interface {
		return Doc{}, false
	}
	if t.Implements(documenterType) {
		//nolint:forcetypeassert // checked by Implements
		return reflect.Zero(t).Interface().(Documenter).APIDoc(), true
	}
	if reflect.PointerTo(t).Implements(documenterType) {
		//nolint:forcetypeassert // checked by Implements
		return reflect.New(t).Interface().(Documenter).APIDoc(), true
	}
	return Doc{}, false
}

func (r reflectType) Carrier() bool {
	t := r.t
	if t == requestType || t == reflect.PointerTo(requestType) {
		return true
	}
	if t.Implements(responseWriterType) || t.Implements(carrierType) {
		return true
	}
	return t.Kind() != reflect.Interface && reflect.PointerTo(t).Implements(carrierType)
}

// typeKey encodes t by package path rather than package name, so two
// packages with the same name never collide.
func typeKey(t reflect.Type) string {
	if t.Name() != "" {
		if t.PkgPath() == "" {
			return t.Name()
		}
		return t.PkgPath() + "." + t.Name()
	}
	//exhaustive:ignore
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + typeKey(t.Elem())
	case reflect.Slice:
		return "[]" + typeKey(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), typeKey(t.Elem()))
	case reflect.Map:
		return "map[" + typeKey(t.Key()) + "]" + typeKey(t.Elem())
	case reflect.Chan:
		return t.ChanDir().String() + " " + typeKey(t.Elem())
	default:
		return t.String()
	}
}

// deref strips pointers. A cycle of named pointer types (`type P *P`)
// stops at the first repeated one.
func deref(t reflect.Type) reflect.Type {
	var named map[reflect.Type]bool
	for t.Kind() == reflect.Pointer {
		if t.Name() != "" {
			if named[t] {
				break
			}
			if named == nil {
				named = make(map[reflect.Type]bool)
			}
			named[t] = true
		}
		t = t.Elem()
	}
	return t
}

// JSONFieldName returns the wire name of a struct field: its json name when
// set, the Go name otherwise.
func JSONFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}
