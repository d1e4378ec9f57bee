package router

import (
	"reflect"
	"strings"

	"github.com/bjaus/apidoc"
)

// paramTags are the struct tags used for binding request parameters, with
// the binding each one reports to the documentation.
var paramTags = []struct {
	tag     string
	binding apidoc.Binding
}{
	{"path", apidoc.BindPath},
	{"query", apidoc.BindQuery},
	{"header", apidoc.BindHeader},
	{"cookie", apidoc.BindCookie},
	{"matrix", apidoc.BindMatrix},
}

// hasParamTags reports whether the given type has any fields with
// parameter binding tags.
func hasParamTags(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := range t.NumField() {
		f := t.Field(i)
		if f.IsExported() && len(fieldBindings(f)) > 0 {
			return true
		}
	}
	return false
}

// fieldBindings reports every source a field is bound from.
func fieldBindings(f reflect.StructField) []apidoc.Binding {
	var bindings []apidoc.Binding
	for _, pt := range paramTags {
		if name, _ := tagOptions(f.Tag.Get(pt.tag)); name != "" {
			bindings = append(bindings, pt.binding)
		}
	}
	return bindings
}

// paramName returns the wire name of a tagged parameter field, falling
// back to the Go field name.
func paramName(f reflect.StructField) string {
	for _, pt := range paramTags {
		if name, _ := tagOptions(f.Tag.Get(pt.tag)); name != "" {
			return name
		}
	}
	return f.Name
}

// hasRawRequest reports whether the given type embeds a RawRequest field.
func hasRawRequest(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := range t.NumField() {
		if t.Field(i).Type == reflect.TypeFor[RawRequest]() {
			return true
		}
	}
	return false
}

// hasBodyField reports whether the given type has an exported "Body" field.
func hasBodyField(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	f, ok := t.FieldByName("Body")
	return ok && f.IsExported()
}

// tagOptions splits a struct tag value on comma and returns
// the name and remaining options.
func tagOptions(tag string) (string, string) {
	name, opts, _ := strings.Cut(tag, ",")
	return name, opts
}
