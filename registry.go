package apidoc

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Binding is a marker attached to a handler parameter that tells the
// framework where the value comes from.
type Binding int

// Parameter binding markers.
const (
	BindPath Binding = iota + 1
	BindBody
	BindQuery
	BindHeader
	BindMatrix
	BindCookie
)

// Doc is the documentation attached to a handler, parameter, type, or field.
type Doc struct {
	Description string
	Help        []string
}

// Parameter is a declared handler input.
type Parameter struct {
	// Name is the declared name. Unnamed parameters get a synthetic argN name.
	Name     string
	Type     Type
	Bindings []Binding
	Doc      *Doc
}

// HasBinding reports whether the parameter carries b.
func (p Parameter) HasBinding(b Binding) bool {
	for _, have := range p.Bindings {
		if have == b {
			return true
		}
	}
	return false
}

// HandlerMethod is the metadata of one registered route handler.
type HandlerMethod struct {
	// Name identifies the handler in error messages.
	Name     string
	Patterns []string
	Methods  []string
	// Mappings are the route-grouping values declared on the group the
	// handler belongs to.
	Mappings []string
	Doc      *Doc
	Params   []Parameter
	// Returns is the declared response type, nil when there is no body.
	Returns Type
}

// MappedTo reports whether the handler belongs to the given API version tag.
func (h HandlerMethod) MappedTo(version string) bool {
	for _, m := range h.Mappings {
		if m == version {
			return true
		}
	}
	return false
}

// Registry supplies registered handler metadata.
type Registry interface {
	HandlerMethods() ([]HandlerMethod, error)
}

// Handlers is a static Registry.
type Handlers []HandlerMethod

// HandlerMethods implements Registry.
func (h Handlers) HandlerMethods() ([]HandlerMethod, error) {
	return h, nil
}

// validateHandlers reports every malformed handler at once.
func validateHandlers(handlers []HandlerMethod) error {
	var errs *multierror.Error
	for i, h := range handlers {
		name := h.Name
		if name == "" {
			name = fmt.Sprintf("handler #%d", i)
		}
		if len(h.Patterns) == 0 {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s: no uri patterns", ErrInvalidHandler, name))
		}
		for j, p := range h.Params {
			if p.Type == nil {
				errs = multierror.Append(errs, fmt.Errorf("%w: %s: parameter %d has no type", ErrInvalidHandler, name, j))
			}
		}
	}
	return errs.ErrorOrNil()
}

