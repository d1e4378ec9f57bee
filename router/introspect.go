package router

import (
	"fmt"
	"net/http"
	"reflect"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/bjaus/apidoc"
)

// HandlerMethods implements apidoc.Registry. It describes every registered
// route in registration order. Each group prefix is a mapping of its routes.
func (r *Router) HandlerMethods() ([]apidoc.HandlerMethod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := apidoc.NewReflectProvider(r.docs)

	var merr *multierror.Error
	out := make([]apidoc.HandlerMethod, 0, len(r.routes))
	for i := range r.routes {
		hm, err := handlerMethod(p, &r.routes[i])
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		out = append(out, hm)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func handlerMethod(p *apidoc.ReflectProvider, ri *routeInfo) (apidoc.HandlerMethod, error) {
	hm := apidoc.HandlerMethod{
		Name:     ri.name(),
		Patterns: slices.Clone(ri.patterns),
		Methods:  slices.Clone(ri.methods),
		Mappings: slices.Clone(ri.mappings),
		Doc:      ri.doc,
	}

	if ri.raw {
		hm.Params = []apidoc.Parameter{
			{Name: "w", Type: apidoc.TypeFor[http.ResponseWriter](p)},
			{Name: "r", Type: apidoc.TypeFor[*http.Request](p)},
		}
		return hm, nil
	}

	if err := checkPathParams(ri); err != nil {
		return apidoc.HandlerMethod{}, err
	}

	hm.Params = requestParams(p, ri.reqType)
	if ri.respType != reflect.TypeFor[Void]() {
		hm.Returns = p.TypeOf(ri.respType)
	}
	return hm, nil
}

// requestParams describes a request type as handler parameters: one per
// bound field, the Body field as the request body, or the whole type as
// the body when nothing is bound.
func requestParams(p *apidoc.ReflectProvider, t reflect.Type) []apidoc.Parameter {
	switch classifyRequest(t) {
	case catVoid:
		return nil
	case catBodyOnly:
		return []apidoc.Parameter{{
			Name:     "body",
			Type:     p.TypeOf(t),
			Bindings: []apidoc.Binding{apidoc.BindBody},
		}}
	case catParams, catMixed:
	}

	var params []apidoc.Parameter
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		param := apidoc.Parameter{
			Name:     paramName(f),
			Type:     p.TypeOf(f.Type),
			Bindings: fieldBindings(f),
		}
		if f.Name == "Body" {
			param.Name = "body"
			param.Bindings = []apidoc.Binding{apidoc.BindBody}
		}
		if doc, ok := apidoc.TagDoc(f.Tag); ok {
			param.Doc = &doc
		}
		params = append(params, param)
	}
	return params
}

// checkPathParams reports path-bound fields whose wildcard is missing from
// one of the route's patterns.
func checkPathParams(ri *routeInfo) error {
	t := ri.reqType
	if cat := classifyRequest(t); cat == catVoid || cat == catBodyOnly {
		return nil
	}

	for i := range t.NumField() {
		name := t.Field(i).Tag.Get("path")
		if name == "" {
			continue
		}
		for _, pattern := range ri.patterns {
			if !strings.Contains(pattern, "{"+name+"}") && !strings.Contains(pattern, "{"+name+"...}") {
				return fmt.Errorf("%w: %s: {%s} in %s", ErrPathParam, ri.name(), name, pattern)
			}
		}
	}
	return nil
}
