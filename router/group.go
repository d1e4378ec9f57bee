package router

// Group is a collection of routes mounted under one or more prefixes with
// shared middleware. Each prefix is also a route-grouping value: the
// group's routes are documented under every one of them.
type Group struct {
	router     *Router
	prefixes   []string
	middleware []Middleware
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithGroupPrefixes mounts the group under additional prefixes.
func WithGroupPrefixes(prefixes ...string) GroupOption {
	return func(g *Group) {
		g.prefixes = append(g.prefixes, prefixes...)
	}
}

// WithGroupMiddleware adds middleware to the group.
func WithGroupMiddleware(mw ...Middleware) GroupOption {
	return func(g *Group) {
		g.middleware = append(g.middleware, mw...)
	}
}

// Group creates a new route group with the given prefix and options.
func (r *Router) Group(prefix string, opts ...GroupOption) *Group {
	g := &Group{
		router:   r,
		prefixes: []string{prefix},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Prefixes returns the prefixes the group is mounted under, primary first.
func (g *Group) Prefixes() []string {
	return append([]string(nil), g.prefixes...)
}

// addRoute implements Registrar for Group.
func (g *Group) addRoute(ri routeInfo) {
	patterns := make([]string, 0, len(g.prefixes)*len(ri.patterns))
	for _, prefix := range g.prefixes {
		for _, pattern := range ri.patterns {
			patterns = append(patterns, prefix+pattern)
		}
	}
	ri.patterns = patterns
	ri.mappings = append(ri.mappings, g.prefixes...)
	g.router.addRoute(ri)
}

func (g *Group) getValidator() Validator { return g.router.validator }

func (g *Group) getErrorHandler() ErrorHandler { return g.router.errorHandler }

func (g *Group) routeMiddleware() []Middleware { return g.middleware }
