package apidoc

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/samber/lo"
)

const undocumented = "undocumented"

// Option configures an Introspector.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	reserved func(pkgPath string) bool
	prefixes []string
}

// WithLogger sets the logger used to report scan results.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithReservedPackages excludes types declared in packages with any of the
// given import path prefixes from the data type map. Their fields are still
// traversed.
func WithReservedPackages(prefixes ...string) Option {
	return func(c *config) {
		c.prefixes = append(c.prefixes, prefixes...)
	}
}

// WithReservedFunc replaces the standard library check used to decide which
// packages are reserved. Prefixes from WithReservedPackages still apply.
func WithReservedFunc(fn func(pkgPath string) bool) Option {
	return func(c *config) {
		c.reserved = fn
	}
}

// IsStandardPackage reports whether pkgPath looks like a standard library
// import path: its first element has no dot. The main package is not.
func IsStandardPackage(pkgPath string) bool {
	if pkgPath == "main" {
		return false
	}
	first, _, _ := strings.Cut(pkgPath, "/")
	return !strings.Contains(first, ".")
}

func (c *config) isReserved(pkgPath string) bool {
	if pkgPath == "" || c.reserved(pkgPath) {
		return true
	}
	for _, p := range c.prefixes {
		if pkgPath == p || strings.HasPrefix(pkgPath, strings.TrimSuffix(p, "/")+"/") {
			return true
		}
	}
	return false
}

// Introspector documents the handlers of a Registry. All work happens in New;
// afterwards it only serves the cached snapshot.
type Introspector struct {
	api APIVersions
}

// New scans reg once for every API version tag. A handler belongs to a tag
// when its Mappings contain the tag verbatim. Any failure aborts the scan:
// there is no partial snapshot.
func New(projectVersion string, reg Registry, apiVersions []string, opts ...Option) (*Introspector, error) {
	cfg := &config{
		logger:   slog.Default(),
		reserved: IsStandardPackage,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if reg == nil {
		return nil, ErrNilRegistry
	}

	handlers, err := reg.HandlerMethods()
	if err != nil {
		return nil, fmt.Errorf("apidoc: read handler registry: %w", err)
	}
	if err := validateHandlers(handlers); err != nil {
		return nil, err
	}

	versions := make(map[string]EndpointsInfo, len(apiVersions))
	for _, version := range apiVersions {
		info, err := cfg.scan(handlers, version)
		if err != nil {
			return nil, fmt.Errorf("apidoc: scan api version %q: %w", version, err)
		}
		versions[version] = info
		cfg.logger.Info("scanned api version",
			"version", version,
			"endpoints", len(info.Endpoints),
			"data_types", len(info.DataTypes),
		)
	}

	return &Introspector{
		api: APIVersions{
			ProjectVersion: projectVersion,
			Versions:       versions,
		},
	}, nil
}

// KnownAPI returns the snapshot built by New. The maps and slices inside are
// shared between callers and must not be modified.
func (in *Introspector) KnownAPI() APIVersions {
	return in.api
}

func (c *config) scan(handlers []HandlerMethod, version string) (EndpointsInfo, error) {
	selected := lo.Filter(handlers, func(h HandlerMethod, _ int) bool {
		return h.MappedTo(version)
	})

	endpoints := lo.Map(selected, func(h HandlerMethod, _ int) EndpointInfo {
		return endpointInfo(h)
	})
	slices.SortStableFunc(endpoints, func(a, b EndpointInfo) int {
		return cmp.Compare(a.URIs[0], b.URIs[0])
	})

	dataTypes := make(map[string]DataTypeInfo)
	for _, h := range selected {
		found, err := c.discover(h)
		if err != nil {
			return EndpointsInfo{}, fmt.Errorf("%s: %w", h.Name, err)
		}
		for _, dt := range found {
			dataTypes[dt.Type] = dt
		}
	}

	return EndpointsInfo{Endpoints: endpoints, DataTypes: dataTypes}, nil
}

func endpointInfo(h HandlerMethod) EndpointInfo {
	info := EndpointInfo{
		URIs:        slices.Clone(h.Patterns),
		Methods:     slices.Clone(h.Methods),
		Description: undocumented,
		Parameters:  []ParameterInfo{},
		Response:    displayName(h.Returns),
	}
	if h.Doc != nil {
		info.Description = h.Doc.Description
		info.Help = slices.Clone(h.Doc.Help)
	}

	for i, p := range h.Params {
		if p.Type.Carrier() {
			continue
		}
		info.Parameters = append(info.Parameters, parameterInfo(i, p))
	}
	return info
}

// bindingPriority is the order in which binding markers are checked. The
// first marker a parameter carries decides its category.
var bindingPriority = []struct {
	binding Binding
	sendAs  SendAs
}{
	{BindPath, PathVariable},
	{BindBody, RequestBody},
	{BindQuery, RequestParameter},
	{BindHeader, RequestParameter},
	{BindMatrix, MatrixVariable},
}

// ResolveSendAs returns the category of a parameter carrying the given
// binding markers.
func ResolveSendAs(p Parameter) SendAs {
	for _, b := range bindingPriority {
		if p.HasBinding(b.binding) {
			return b.sendAs
		}
	}
	return Custom
}

func parameterInfo(index int, p Parameter) ParameterInfo {
	name := p.Name
	if name == "" {
		name = fmt.Sprintf("arg%d", index)
	}
	info := ParameterInfo{
		Type:        displayName(p.Type),
		Name:        name,
		SendAs:      ResolveSendAs(p),
		Description: name,
	}
	if p.Doc != nil {
		info.Description = p.Doc.Description
		info.Help = slices.Clone(p.Doc.Help)
	}
	return info
}
