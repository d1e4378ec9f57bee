package apidoc

import (
	"reflect"
	"strings"
)

// Documenter is implemented by types that describe themselves.
type Documenter interface {
	APIDoc() Doc
}

type member struct {
	owner reflect.Type
	name  string
}

// Docs is a side table of documentation keyed by type and, optionally, by
// field name. Populate it before building the snapshot; it is not safe for
// concurrent writes.
type Docs struct {
	types   map[reflect.Type]Doc
	members map[member]Doc
}

// NewDocs returns an empty side table.
func NewDocs() *Docs {
	return &Docs{
		types:   make(map[reflect.Type]Doc),
		members: make(map[member]Doc),
	}
}

// Type documents t.
func (d *Docs) Type(t reflect.Type, doc Doc) *Docs {
	d.types[t] = doc
	return d
}

// Field documents the field of owner with the given name. The name is the
// field's wire name: its json name when it has one, the Go name otherwise.
func (d *Docs) Field(owner reflect.Type, name string, doc Doc) *Docs {
	d.members[member{owner: owner, name: name}] = doc
	return d
}

// DocumentType documents T.
func DocumentType[T any](d *Docs, description string, help ...string) {
	d.Type(reflect.TypeFor[T](), Doc{Description: description, Help: help})
}

// DocumentField documents a field of T.
func DocumentField[T any](d *Docs, field, description string, help ...string) {
	d.Field(reflect.TypeFor[T](), field, Doc{Description: description, Help: help})
}

func (d *Docs) typeDoc(t reflect.Type) (Doc, bool) {
	if d == nil {
		return Doc{}, false
	}
	doc, ok := d.types[t]
	return doc, ok
}

func (d *Docs) fieldDoc(owner reflect.Type, name string) (Doc, bool) {
	if d == nil {
		return Doc{}, false
	}
	doc, ok := d.members[member{owner: owner, name: name}]
	return doc, ok
}

// documentedFields returns the field names documented for owner.
func (d *Docs) documentedFields(owner reflect.Type) []string {
	if d == nil {
		return nil
	}
	var names []string
	for m := range d.members {
		if m.owner == owner {
			names = append(names, m.name)
		}
	}
	return names
}

// TagDoc reads documentation from `doc` and `help` struct tags. Help lines
// are separated by "|".
func TagDoc(tag reflect.StructTag) (Doc, bool) {
	desc, ok := tag.Lookup("doc")
	if !ok {
		return Doc{}, false
	}
	return Doc{Description: desc, Help: splitHelp(tag.Get("help"))}, true
}

func splitHelp(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "|")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}
