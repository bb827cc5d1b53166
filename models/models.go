// Package models defines the descriptor value objects produced by the
// analyzer and consumed by the generator. Descriptors are plain data: they
// carry no behavior and are never mutated after construction.
package models

// TypeKind discriminates the shape of a resolved type descriptor.
type TypeKind string

const (
	KindPrimitive TypeKind = "primitive"
	KindArray     TypeKind = "array"
	KindEnum      TypeKind = "enum"
	KindUnion     TypeKind = "union"
	KindObject    TypeKind = "object"
	KindReference TypeKind = "reference"
	KindUnknown   TypeKind = "unknown"
)

// TypeDescriptor is the finite, resolved representation of a declared type.
// Cyclic declarations are broken with KindReference nodes, so a descriptor
// tree is always finite and safe to walk.
type TypeDescriptor struct {
	Kind         TypeKind
	Name         string
	IsArray      bool
	Format       string
	Elem         *TypeDescriptor
	Properties   []PropertyDescriptor
	UnionMembers []string
	EnumValues   []any
}

// IsObject reports whether the descriptor expands to a named object shape
// with at least a declared name, i.e. something that can be registered as a
// component schema.
func (t *TypeDescriptor) IsObject() bool {
	return t != nil && t.Kind == KindObject
}

// PropertyDescriptor describes one declared property of an object shape.
// Required reflects declared optionality only.
type PropertyDescriptor struct {
	Name        string
	Type        *TypeDescriptor
	Required    bool
	Description string
	Constraints []ConstraintDescriptor
	Example     any
}

// SchemaConstraint is a single OpenAPI schema property derived from a
// validation annotation (e.g. {"minLength", 5}).
type SchemaConstraint struct {
	Name  string
	Value any
}

// ConstraintDescriptor is the mapped form of one recognized validation
// annotation. Kind keeps the annotation name and Args its raw argument text;
// Constraints holds the schema-level rules it translates to (possibly empty
// for recognized-but-unmapped annotations).
type ConstraintDescriptor struct {
	Kind        string
	Args        []string
	Constraints []SchemaConstraint
}

// ParamLocation identifies where a route parameter is bound.
type ParamLocation string

const (
	InPath   ParamLocation = "path"
	InQuery  ParamLocation = "query"
	InHeader ParamLocation = "header"
	InBody   ParamLocation = "body"
)

// ParameterDescriptor describes one bound handler argument.
type ParameterDescriptor struct {
	Name        string
	In          ParamLocation
	Type        *TypeDescriptor
	Required    bool
	Description string
}

// RouteDescriptor captures the extracted metadata of a single handler bound
// to an HTTP method and path template.
type RouteDescriptor struct {
	Name        string
	Method      string
	Path        string
	FullPath    string
	Description string
	Parameters  []ParameterDescriptor
	RequestBody *TypeDescriptor
	Response    *TypeDescriptor
	Guards      []string
	Public      bool
}

// ServiceDescriptor is the per-service-declaration aggregate: its routes plus
// the resolved category and version labels. Built once per scanned service
// declaration and immutable afterwards.
type ServiceDescriptor struct {
	Name        string
	BasePath    string
	SourcePath  string
	Category    string
	Version     string
	Description string
	Routes      []RouteDescriptor
	Guards      []string
}

// ServiceGroupDescriptor records a group declaration: which services it
// enumerates and which other groups it imports. Used only while resolving
// category labels; it is not retained in the synthesized document.
type ServiceGroupDescriptor struct {
	Name       string
	SourcePath string
	Services   []string
	Imports    []string
}
