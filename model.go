package apidoc

import (
	"fmt"
	"slices"
)

// SendAs describes how a client sends a parameter.
type SendAs int

// Parameter transport categories.
const (
	Custom SendAs = iota
	PathVariable
	RequestBody
	RequestParameter
	RequestHeader
	MatrixVariable
)

var sendAsNames = map[SendAs]string{
	Custom:           "Custom",
	PathVariable:     "PathVariable",
	RequestBody:      "RequestBody",
	RequestParameter: "RequestParameter",
	RequestHeader:    "RequestHeader",
	MatrixVariable:   "MatrixVariable",
}

// String returns the category name.
func (s SendAs) String() string {
	if name, ok := sendAsNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SendAs(%d)", int(s))
}

// MarshalText encodes the category by name.
func (s SendAs) MarshalText() ([]byte, error) {
	name, ok := sendAsNames[s]
	if !ok {
		return nil, fmt.Errorf("apidoc: unknown send-as value %d", int(s))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a category name.
func (s *SendAs) UnmarshalText(text []byte) error {
	for v, name := range sendAsNames {
		if name == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("apidoc: unknown send-as %q", text)
}

// ParameterInfo documents a single handler input.
type ParameterInfo struct {
	Type        string   `json:"type" yaml:"type"`
	Name        string   `json:"name" yaml:"name"`
	SendAs      SendAs   `json:"sendAs" yaml:"sendAs"`
	Description string   `json:"description" yaml:"description"`
	Help        []string `json:"help,omitempty" yaml:"help,omitempty"`
}

// EndpointInfo documents one registered handler.
type EndpointInfo struct {
	URIs        []string        `json:"uris" yaml:"uris"`
	Methods     []string        `json:"methods" yaml:"methods"`
	Description string          `json:"description" yaml:"description"`
	Help        []string        `json:"help,omitempty" yaml:"help,omitempty"`
	Parameters  []ParameterInfo `json:"parameters" yaml:"parameters"`
	Response    string          `json:"response" yaml:"response"`
}

// FieldInfo documents one field of a data type.
type FieldInfo struct {
	Type        string   `json:"type" yaml:"type"`
	Description string   `json:"description" yaml:"description"`
	Help        []string `json:"help,omitempty" yaml:"help,omitempty"`
}

// DataTypeInfo documents a type referenced by an endpoint.
type DataTypeInfo struct {
	// Type is the display name. It is the key of the owning data type map
	// and is not serialized.
	Type        string               `json:"-" yaml:"-"`
	Description string               `json:"description" yaml:"description"`
	Help        []string             `json:"help,omitempty" yaml:"help,omitempty"`
	Fields      map[string]FieldInfo `json:"fields" yaml:"fields"`
}

// FieldNames returns the field names in ascending order.
func (d DataTypeInfo) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for name := range d.Fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// EndpointsInfo is the documentation of one API version.
type EndpointsInfo struct {
	Endpoints []EndpointInfo          `json:"endpoints" yaml:"endpoints"`
	DataTypes map[string]DataTypeInfo `json:"dataTypes" yaml:"dataTypes"`
}

// DataTypeNames returns the data type names in ascending order.
func (e EndpointsInfo) DataTypeNames() []string {
	names := make([]string, 0, len(e.DataTypes))
	for name := range e.DataTypes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// APIVersions is the versioned API snapshot. It is built once and must be
// treated as read-only by every consumer.
type APIVersions struct {
	ProjectVersion string                   `json:"projectVersion" yaml:"projectVersion"`
	Versions       map[string]EndpointsInfo `json:"versions" yaml:"versions"`
}
