package analyzer

import (
	"strings"

	"github.com/oasforge/oasforge/decl"
	"github.com/oasforge/oasforge/models"
)

// resolveContext carries the state of one top-level type resolution: the
// current depth and the set of canonical type names being expanded on this
// call path. It is created fresh per top-level call and never shared, so
// independent resolutions cannot leak visited state into each other.
type resolveContext struct {
	depth  int
	active map[string]struct{}
}

func newResolveContext() *resolveContext {
	return &resolveContext{active: make(map[string]struct{})}
}

// descend returns a child context one level deeper. The active set is shared
// within the call path on purpose: it tracks ancestors, not siblings, and
// entries are removed on the way back up.
func (rc *resolveContext) descend() *resolveContext {
	return &resolveContext{depth: rc.depth + 1, active: rc.active}
}

// primitiveNames maps declared primitive names to their schema type.
var primitiveNames = map[string]string{
	"string":  "string",
	"number":  "number",
	"int":     "number",
	"integer": "number",
	"float":   "number",
	"bigint":  "number",
	"boolean": "boolean",
	"bool":    "boolean",
}

// nominalFormats maps primitive-like nominal type names to a string schema
// with a format. Declared names are matched case-insensitively.
var nominalFormats = map[string]string{
	"date":     "date-time",
	"datetime": "date-time",
	"email":    "email",
	"uuid":     "uuid",
	"url":      "uri",
	"uri":      "uri",
}

// opaqueNames resolve to unknown without further diagnostics.
var opaqueNames = map[string]struct{}{
	"any":       {},
	"unknown":   {},
	"object":    {},
	"void":      {},
	"null":      {},
	"undefined": {},
	"never":     {},
}

// ResolveType resolves a declared type reference into a finite descriptor
// tree using a fresh traversal context.
func (a *Analyzer) ResolveType(ref *decl.TypeRef) *models.TypeDescriptor {
	return a.resolveType(ref, newResolveContext())
}

func (a *Analyzer) resolveType(ref *decl.TypeRef, rc *resolveContext) *models.TypeDescriptor {
	if ref == nil {
		return unknownDescriptor("")
	}
	if rc.depth > a.maxDepth {
		return unknownDescriptor(ref.Name)
	}

	switch ref.Kind {
	case decl.RefArray:
		elem := a.resolveType(ref.Elem, rc.descend())
		return &models.TypeDescriptor{
			Kind:    models.KindArray,
			Name:    elem.Name,
			IsArray: true,
			Elem:    elem,
		}

	case decl.RefPromise:
		// Deferred wrappers are transparent to the descriptor tree.
		return a.resolveType(ref.Elem, rc)

	case decl.RefUnion:
		return &models.TypeDescriptor{
			Kind:         models.KindUnion,
			Name:         ref.Name,
			UnionMembers: memberNames(ref.Members),
		}

	case decl.RefNamed:
		return a.resolveNamed(ref, rc)
	}

	return unknownDescriptor(ref.Name)
}

func (a *Analyzer) resolveNamed(ref *decl.TypeRef, rc *resolveContext) *models.TypeDescriptor {
	name := ref.Name
	lower := strings.ToLower(name)

	if schemaType, ok := primitiveNames[lower]; ok {
		return &models.TypeDescriptor{Kind: models.KindPrimitive, Name: schemaType}
	}

	if format, ok := nominalFormats[lower]; ok {
		return &models.TypeDescriptor{Kind: models.KindPrimitive, Name: "string", Format: format}
	}

	if _, ok := opaqueNames[lower]; ok {
		return unknownDescriptor(name)
	}

	if enum, ok := a.reg.Enum(name); ok {
		values := make([]any, 0, len(enum.Values))
		for _, v := range enum.Values {
			values = append(values, v.Value())
		}
		return &models.TypeDescriptor{Kind: models.KindEnum, Name: name, EnumValues: values}
	}

	class, ok := a.reg.Class(name)
	if !ok {
		return unknownDescriptor(name)
	}

	// An ancestor on this call path is already expanding this name: emit a
	// non-expanding reference instead of recursing forever.
	if _, expanding := rc.active[name]; expanding {
		return &models.TypeDescriptor{Kind: models.KindReference, Name: name}
	}

	rc.active[name] = struct{}{}
	defer delete(rc.active, name)

	props := make([]models.PropertyDescriptor, 0, len(class.Properties))
	for i := range class.Properties {
		props = append(props, a.resolveProperty(&class.Properties[i], rc))
	}

	return &models.TypeDescriptor{Kind: models.KindObject, Name: name, Properties: props}
}

func (a *Analyzer) resolveProperty(prop *decl.Property, rc *resolveContext) models.PropertyDescriptor {
	desc := models.PropertyDescriptor{
		Name:        prop.Name,
		Type:        a.resolveType(prop.Type, rc.descend()),
		Required:    !prop.Optional,
		Description: summarize(prop.Doc),
	}

	for i := range prop.Decorators {
		dec := &prop.Decorators[i]
		if dec.Name == annotationOptional {
			desc.Required = false
		}
		if c := MapAnnotation(dec.Name, dec.Args); c != nil {
			desc.Constraints = append(desc.Constraints, *c)
		}
	}

	return desc
}

func memberNames(members []decl.TypeRef) []string {
	names := make([]string, 0, len(members))
	for i := range members {
		names = append(names, memberName(&members[i]))
	}
	return names
}

func memberName(ref *decl.TypeRef) string {
	switch ref.Kind {
	case decl.RefArray:
		if ref.Elem != nil {
			return memberName(ref.Elem) + "[]"
		}
		return "[]"
	case decl.RefPromise:
		if ref.Elem != nil {
			return memberName(ref.Elem)
		}
		return ref.Name
	default:
		return ref.Name
	}
}

func unknownDescriptor(name string) *models.TypeDescriptor {
	return &models.TypeDescriptor{Kind: models.KindUnknown, Name: name}
}
