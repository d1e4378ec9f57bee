package apidoc

import (
	"slices"

	"github.com/samber/lo"
)

// worklist is the breadth-first frontier of types still to describe. Types
// are keyed by Type.Key, so List[A] and List[B] are distinct entries.
type worklist struct {
	seen     map[string]bool
	frontier []Type
}

func newWorklist() *worklist {
	return &worklist{seen: make(map[string]bool)}
}

// push queues t when it should be inspected. Queued types count as seen.
func (w *worklist) push(t Type) {
	if !w.shouldInspect(t) {
		return
	}
	w.seen[t.Key()] = true
	w.frontier = append(w.frontier, t)
}

// next hands out the current frontier and starts a new one.
func (w *worklist) next() []Type {
	current := w.frontier
	w.frontier = nil
	return current
}

func (w *worklist) shouldInspect(t Type) bool {
	return w.inspectable(t, make(map[string]bool))
}

// inspectable defers collections to their elements. visiting holds the
// collections on the current descent, which ends self-referential shapes
// such as `type Tree []Tree`.
func (w *worklist) inspectable(t Type, visiting map[string]bool) bool {
	if t == nil || t.Primitive() || t.Core() {
		return false
	}
	key := t.Key()
	if w.seen[key] || visiting[key] {
		return false
	}
	if !t.Collection() {
		return true
	}
	visiting[key] = true
	if args := t.TypeArgs(); len(args) > 0 {
		return lo.ContainsBy(args, func(arg Type) bool {
			return w.inspectable(arg, visiting)
		})
	}
	return w.inspectable(t.Elem(), visiting)
}

// discover describes every type reachable from the handler's documented
// parameters and its response, in breadth-first order.
func (c *config) discover(h HandlerMethod) ([]DataTypeInfo, error) {
	w := newWorklist()
	for _, p := range h.Params {
		if p.Type.Carrier() {
			continue
		}
		w.push(p.Type)
	}
	w.push(h.Returns)

	var result []DataTypeInfo
	for frontier := w.next(); len(frontier) > 0; frontier = w.next() {
		for _, t := range frontier {
			dt, err := describe(t, w)
			if err != nil {
				return nil, err
			}
			// Collections, named ones included, are documented through
			// their elements.
			if !t.Collection() && !c.isReserved(t.PkgPath()) {
				result = append(result, dt)
			}
		}
	}
	return result, nil
}

// describe documents t and queues the types it refers to.
func describe(t Type, w *worklist) (DataTypeInfo, error) {
	name := displayName(t)
	dt := DataTypeInfo{
		Type:        name,
		Description: name,
		Fields:      make(map[string]FieldInfo),
	}
	if doc, ok := t.Doc(); ok {
		dt.Description = doc.Description
		dt.Help = slices.Clone(doc.Help)
	}

	for _, arg := range t.TypeArgs() {
		w.push(arg)
	}
	if t.Collection() {
		w.push(t.Elem())
	}

	fields, err := t.Fields()
	if err != nil {
		return DataTypeInfo{}, err
	}
	for _, f := range fields {
		dt.Fields[f.Name] = fieldInfo(f)
		w.push(f.Type)
	}

	return dt, nil
}

// fieldInfo prefers the field's own documentation, then the documentation of
// the field's type, then the type name.
func fieldInfo(f Field) FieldInfo {
	info := FieldInfo{Type: displayName(f.Type)}
	info.Description = info.Type
	switch doc, ok := f.Type.Doc(); {
	case f.Doc != nil:
		info.Description = f.Doc.Description
		info.Help = slices.Clone(f.Doc.Help)
	case ok:
		info.Description = doc.Description
		info.Help = slices.Clone(doc.Help)
	}
	return info
}
