package apidoc

// Type is a provider-neutral view of a type referenced by a handler. The
// discovery algorithm only talks to this interface; ReflectProvider backs it
// with the reflect package.
type Type interface {
	// Key identifies the type, including its type arguments. Two Types with
	// the same Key are the same type.
	Key() string
	// String returns the qualified name, before shortening.
	String() string
	// PkgPath returns the declaring package, or "" for unnamed and
	// predeclared types.
	PkgPath() string
	// Primitive reports whether the type has no inner structure worth
	// documenting.
	Primitive() bool
	// Core reports whether the type is predeclared by the language.
	Core() bool
	// Collection reports whether the type wraps an element type.
	Collection() bool
	// Elem returns the element type of a collection, nil otherwise.
	Elem() Type
	// TypeArgs returns the type arguments of a parameterized type.
	TypeArgs() []Type
	// Fields returns the documented fields of the type.
	Fields() ([]Field, error)
	// Doc returns the type-level documentation, if any.
	Doc() (Doc, bool)
	// Carrier reports whether the type is the framework's request or
	// response plumbing rather than a documented input.
	Carrier() bool
}

// Field is a declared field of a Type.
type Field struct {
	Name string
	Type Type
	// Doc is the field-level documentation, nil when none is attached.
	Doc *Doc
}
