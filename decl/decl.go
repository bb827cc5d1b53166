// Package decl models the declaration graph handed over by the external
// source parser. The pipeline never reads source text or the filesystem; it
// consumes these value objects only.
package decl

// TypeRefKind discriminates the structural shape of a declared type
// reference.
type TypeRefKind string

const (
	RefNamed   TypeRefKind = "named"
	RefArray   TypeRefKind = "array"
	RefUnion   TypeRefKind = "union"
	RefPromise TypeRefKind = "promise"
)

// TypeRef is a structural reference to a declared type: a named type, an
// array of an element type, a union of members, or a deferred (promise-like)
// wrapper around an inner type.
type TypeRef struct {
	Kind    TypeRefKind `json:"kind"`
	Name    string      `json:"name,omitempty"`
	Elem    *TypeRef    `json:"elem,omitempty"`
	Members []TypeRef   `json:"members,omitempty"`
}

// Decorator is one declared annotation with its raw argument text.
type Decorator struct {
	Name string   `json:"name"`
	Args []string `json:"args,omitempty"`
}

// Property is a declared class property.
type Property struct {
	Name       string      `json:"name"`
	Doc        string      `json:"doc,omitempty"`
	Optional   bool        `json:"optional,omitempty"`
	Type       *TypeRef    `json:"type,omitempty"`
	Decorators []Decorator `json:"decorators,omitempty"`
}

// Param is a declared handler parameter.
type Param struct {
	Name       string      `json:"name"`
	Optional   bool        `json:"optional,omitempty"`
	Type       *TypeRef    `json:"type,omitempty"`
	Decorators []Decorator `json:"decorators,omitempty"`
}

// Method is a declared class method with its leading documentation text.
type Method struct {
	Name       string      `json:"name"`
	Doc        string      `json:"doc,omitempty"`
	Decorators []Decorator `json:"decorators,omitempty"`
	Params     []Param     `json:"params,omitempty"`
	Return     *TypeRef    `json:"return,omitempty"`
}

// Class is a declared class-like type: its decorators, properties and
// methods.
type Class struct {
	Name       string      `json:"name"`
	Doc        string      `json:"doc,omitempty"`
	Decorators []Decorator `json:"decorators,omitempty"`
	Properties []Property  `json:"properties,omitempty"`
	Methods    []Method    `json:"methods,omitempty"`
}

// EnumValue is one declared enum member literal (string or number).
type EnumValue struct {
	String *string  `json:"string,omitempty"`
	Number *float64 `json:"number,omitempty"`
}

// Value returns the member literal as an untyped value.
func (v EnumValue) Value() any {
	if v.String != nil {
		return *v.String
	}
	if v.Number != nil {
		return *v.Number
	}
	return nil
}

// Enum is a declared enumeration.
type Enum struct {
	Name   string      `json:"name"`
	Values []EnumValue `json:"values,omitempty"`
}

// SourceUnit is everything the parser extracted from one source file.
type SourceUnit struct {
	Path    string  `json:"path"`
	Classes []Class `json:"classes,omitempty"`
	Enums   []Enum  `json:"enums,omitempty"`
}
