// Package generator synthesizes the final specification document from
// analyzed service descriptors. Synthesis is a pure function of its inputs:
// identical descriptors and configuration always produce byte-identical
// output.
package generator

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Document is the synthesized OpenAPI 3.0.1 specification. All map-typed
// sections serialize with sorted keys, both as JSON and as YAML, so repeated
// synthesis over the same input is byte-stable.
type Document struct {
	OpenAPI    string                `json:"openapi" yaml:"openapi"`
	Info       Info                  `json:"info" yaml:"info"`
	Servers    []Server              `json:"servers" yaml:"servers"`
	Paths      map[string]PathItem   `json:"paths" yaml:"paths"`
	Components Components            `json:"components" yaml:"components"`
	Tags       []Tag                 `json:"tags" yaml:"tags"`
	Security   []SecurityRequirement `json:"security,omitempty" yaml:"security,omitempty"`
}

// Info is the document's info section.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Server is one server entry.
type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Tag is one tag entry, derived 1:1 from resolved categories.
type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem maps lowercased HTTP methods to their operations.
type PathItem map[string]*Operation

// SecurityRequirement names a security scheme and its scopes.
type SecurityRequirement map[string][]string

// Operation is one method under a path.
type Operation struct {
	OperationID string                `json:"operationId" yaml:"operationId"`
	Summary     string                `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string              `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []Parameter           `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody          `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response   `json:"responses" yaml:"responses"`
	Security    []SecurityRequirement `json:"security,omitempty" yaml:"security,omitempty"`
}

// Parameter is one non-body operation parameter.
type Parameter struct {
	Name        string  `json:"name" yaml:"name"`
	In          string  `json:"in" yaml:"in"`
	Required    bool    `json:"required" yaml:"required"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// RequestBody is the operation request body.
type RequestBody struct {
	Required bool                 `json:"required" yaml:"required"`
	Content  map[string]MediaType `json:"content" yaml:"content"`
}

// MediaType wraps the schema of one content type.
type MediaType struct {
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Response is one status-code entry of an operation.
type Response struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// Components holds the reusable schema and security-scheme tables.
type Components struct {
	Schemas         map[string]*Schema        `json:"schemas" yaml:"schemas"`
	SecuritySchemes map[string]SecurityScheme `json:"securitySchemes,omitempty" yaml:"securitySchemes,omitempty"`
}

// SecurityScheme is a components.securitySchemes entry.
type SecurityScheme struct {
	Type         string `json:"type" yaml:"type"`
	Scheme       string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	BearerFormat string `json:"bearerFormat,omitempty" yaml:"bearerFormat,omitempty"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	In           string `json:"in,omitempty" yaml:"in,omitempty"`
}

// Schema is an OpenAPI schema object. Constraint fields are typed as any so
// the mapped annotation values (integers, floats, literal text) pass through
// unchanged.
type Schema struct {
	Ref         string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type        string             `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string             `json:"format,omitempty" yaml:"format,omitempty"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required    []string           `json:"required,omitempty" yaml:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Enum        []any              `json:"enum,omitempty" yaml:"enum,omitempty"`
	OneOf       []*Schema          `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
	Example     any                `json:"example,omitempty" yaml:"example,omitempty"`

	Pattern          any `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinLength        any `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength        any `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Minimum          any `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum          any `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	ExclusiveMinimum any `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum any `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum,omitempty"`
	MinItems         any `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems         any `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
}

// applyConstraint sets the schema field matching one mapped constraint.
// Unknown constraint names are ignored.
func (s *Schema) applyConstraint(name string, value any) {
	switch name {
	case "format":
		if text, ok := value.(string); ok {
			s.Format = text
		}
	case "pattern":
		s.Pattern = value
	case "minLength":
		s.MinLength = value
	case "maxLength":
		s.MaxLength = value
	case "minimum":
		s.Minimum = value
	case "maximum":
		s.Maximum = value
	case "exclusiveMinimum":
		s.ExclusiveMinimum = value
	case "exclusiveMaximum":
		s.ExclusiveMaximum = value
	case "minItems":
		s.MinItems = value
	case "maxItems":
		s.MaxItems = value
	case "enum":
		if values, ok := value.([]any); ok {
			s.Enum = values
		}
	}
}

// JSON serializes the document as indented JSON. encoding/json writes map
// keys in sorted order, so output is byte-stable.
func (d *Document) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// YAML serializes the document as YAML. yaml.v3 also emits map keys sorted.
func (d *Document) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
