package generator

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/oasforge/oasforge/config"
	"github.com/oasforge/oasforge/logger"
	"github.com/oasforge/oasforge/models"
	"github.com/oasforge/oasforge/pathutil"
)

const (
	openAPIVersion = "3.0.1"
	contentJSON    = "application/json"
	schemaRefBase  = "#/components/schemas/"

	defaultSchemeName = "bearer"
)

// Synthesizer folds analyzed service descriptors into one specification
// document. It is stateless between Synthesize calls.
type Synthesizer struct {
	cfg *config.Config
	log logger.Logger
}

// New creates a synthesizer for the given configuration.
func New(cfg *config.Config, log logger.Logger) *Synthesizer {
	if log == nil {
		log = logger.Nop()
	}
	return &Synthesizer{cfg: cfg, log: log}
}

// Synthesize builds the specification document. The result is a deep,
// self-contained value: no descriptor state is shared with it and no internal
// state survives the call.
func (s *Synthesizer) Synthesize(services []models.ServiceDescriptor) (*Document, error) {
	reg := newSchemaRegistry()

	doc := &Document{
		OpenAPI: openAPIVersion,
		Info: Info{
			Title:       s.cfg.Title,
			Version:     s.cfg.Version,
			Description: s.cfg.Description,
		},
		Paths: make(map[string]PathItem),
	}

	schemeName := s.applySecurity(doc)

	for i := range services {
		svc := &services[i]
		prefix := s.prefixFor(svc)

		for j := range svc.Routes {
			route := &svc.Routes[j]
			key := pathutil.ConvertParams(pathutil.Join(prefix, route.FullPath))

			item, ok := doc.Paths[key]
			if !ok {
				item = make(PathItem)
				doc.Paths[key] = item
			}

			method := strings.ToLower(route.Method)
			if _, dup := item[method]; dup {
				return nil, fmt.Errorf("duplicate route: %s %s", route.Method, key)
			}
			item[method] = s.operation(svc, route, reg, schemeName)
		}
	}

	doc.Servers = s.servers(services)
	doc.Tags = tags(services)
	doc.Components.Schemas = reg.schemas

	return doc, nil
}

// prefixFor returns the path prefix a service's routes mount under. With
// versioning enabled each resolved version gets its own prefix; without it
// the global prefix alone applies, regardless of any detected version tag.
func (s *Synthesizer) prefixFor(svc *models.ServiceDescriptor) string {
	if !s.cfg.Versioning.Enabled {
		return s.cfg.GlobalPrefix
	}

	version := svc.Version
	if version == "" {
		version = s.cfg.Versioning.Fallback
	}
	return pathutil.Join(s.cfg.Versioning.Prefix, version)
}

// servers emits one entry per mounted prefix plus any configured extras.
func (s *Synthesizer) servers(services []models.ServiceDescriptor) []Server {
	var out []Server

	if s.cfg.Versioning.Enabled {
		seen := make(map[string]struct{})
		var versions []string
		for i := range services {
			version := services[i].Version
			if version == "" {
				version = s.cfg.Versioning.Fallback
			}
			if _, dup := seen[version]; dup {
				continue
			}
			seen[version] = struct{}{}
			versions = append(versions, version)
		}
		sort.Strings(versions)

		for _, version := range versions {
			out = append(out, Server{
				URL:         "/" + pathutil.Join(s.cfg.Versioning.Prefix, version),
				Description: "API " + strings.ToUpper(version),
			})
		}
	} else {
		out = append(out, Server{URL: "/" + s.cfg.GlobalPrefix})
	}

	for _, entry := range s.cfg.Servers {
		out = append(out, Server{URL: entry.URL, Description: entry.Description})
	}

	return out
}

// applySecurity installs the configured scheme and returns its name, or ""
// when security is disabled.
func (s *Synthesizer) applySecurity(doc *Document) string {
	if !s.cfg.IncludeSecurity {
		return ""
	}

	scheme := s.cfg.SecurityScheme
	if scheme == nil {
		scheme = config.DefaultBearerScheme()
	}

	doc.Components.SecuritySchemes = map[string]SecurityScheme{
		defaultSchemeName: {
			Type:         scheme.Type,
			Scheme:       scheme.Scheme,
			BearerFormat: scheme.BearerFormat,
			Name:         scheme.Name,
			In:           scheme.In,
		},
	}
	return defaultSchemeName
}

func (s *Synthesizer) operation(svc *models.ServiceDescriptor, route *models.RouteDescriptor, reg *schemaRegistry, schemeName string) *Operation {
	op := &Operation{
		OperationID: operationID(route),
		Summary:     summaryFor(route),
		Tags:        []string{svc.Category},
		Responses:   s.responses(route, reg),
	}

	for i := range route.Parameters {
		param := &route.Parameters[i]
		op.Parameters = append(op.Parameters, Parameter{
			Name:        param.Name,
			In:          string(param.In),
			Required:    param.Required,
			Description: param.Description,
			Schema:      s.schemaFor(param.Type, reg),
		})
	}

	if route.RequestBody != nil {
		op.RequestBody = &RequestBody{
			Required: true,
			Content:  map[string]MediaType{contentJSON: {Schema: s.schemaFor(route.RequestBody, reg)}},
		}
	}

	if schemeName != "" && !route.Public {
		op.Security = []SecurityRequirement{{schemeName: {}}}
	}

	return op
}

func (s *Synthesizer) responses(route *models.RouteDescriptor, reg *schemaRegistry) map[string]Response {
	status := "200"
	if route.Method == "POST" {
		status = "201"
	}

	resp := Response{Description: responseDescription(route.Method)}
	if route.Response != nil {
		resp.Content = map[string]MediaType{contentJSON: {Schema: s.schemaFor(route.Response, reg)}}
	}

	return map[string]Response{status: resp}
}

func operationID(route *models.RouteDescriptor) string {
	if route.Name != "" {
		return route.Name
	}
	cleaned := strings.NewReplacer("/", "_", ":", "", "{", "", "}", "").Replace(route.FullPath)
	return strings.ToLower(route.Method) + "_" + cleaned
}

func summaryFor(route *models.RouteDescriptor) string {
	if route.Description != "" {
		return route.Description
	}
	return route.Method + " /" + route.FullPath
}

func responseDescription(method string) string {
	switch method {
	case "POST":
		return "Resource created successfully"
	case "PUT":
		return "Resource updated successfully"
	case "PATCH":
		return "Resource partially updated"
	case "DELETE":
		return "Resource deleted successfully"
	default:
		return "Successful response"
	}
}

// tags derives the tag list 1:1 from resolved categories, deduplicated and
// sorted for stable output.
func tags(services []models.ServiceDescriptor) []Tag {
	seen := make(map[string]struct{})
	var names []string
	for i := range services {
		category := services[i].Category
		if category == "" {
			continue
		}
		if _, dup := seen[category]; dup {
			continue
		}
		seen[category] = struct{}{}
		names = append(names, category)
	}
	sort.Strings(names)

	out := make([]Tag, 0, len(names))
	for _, name := range names {
		out = append(out, Tag{Name: name})
	}
	return out
}

// schemaRegistry accumulates component schemas during one synthesis pass.
// Named object shapes register once per distinct name; anonymous shapes
// register under a synthetic placeholder keyed by structural fingerprint, so
// identical inline shapes share one entry.
type schemaRegistry struct {
	schemas map[string]*Schema
	anon    map[string]string
	inline  int
}

func newSchemaRegistry() *schemaRegistry {
	return &schemaRegistry{
		schemas: make(map[string]*Schema),
		anon:    make(map[string]string),
	}
}

// schemaFor lowers a type descriptor into a schema, registering object
// shapes as components and returning references to them.
func (s *Synthesizer) schemaFor(t *models.TypeDescriptor, reg *schemaRegistry) *Schema {
	if t == nil {
		return &Schema{}
	}

	switch t.Kind {
	case models.KindPrimitive:
		return &Schema{Type: t.Name, Format: t.Format}

	case models.KindArray:
		return &Schema{Type: "array", Items: s.schemaFor(t.Elem, reg)}

	case models.KindEnum:
		return &Schema{Type: enumBaseType(t.EnumValues), Enum: t.EnumValues}

	case models.KindUnion:
		variants := make([]*Schema, 0, len(t.UnionMembers))
		for _, member := range t.UnionMembers {
			variants = append(variants, memberSchema(member))
		}
		return &Schema{OneOf: variants}

	case models.KindReference:
		return &Schema{Ref: schemaRefBase + t.Name}

	case models.KindObject:
		name := s.registerObject(t, reg)
		return &Schema{Ref: schemaRefBase + name}
	}

	if t.Name != "" {
		return &Schema{Description: "Unresolved type: " + t.Name}
	}
	return &Schema{}
}

func (s *Synthesizer) registerObject(t *models.TypeDescriptor, reg *schemaRegistry) string {
	if t.Name != "" {
		if _, done := reg.schemas[t.Name]; !done {
			// Reserve the slot first so self-references resolve while the
			// schema body is still being built.
			reg.schemas[t.Name] = &Schema{}
			*reg.schemas[t.Name] = *s.objectSchema(t, reg)
		}
		return t.Name
	}

	schema := s.objectSchema(t, reg)
	fp := fingerprint(schema)
	if name, done := reg.anon[fp]; done {
		return name
	}

	reg.inline++
	name := fmt.Sprintf("InlineObject%d", reg.inline)
	reg.anon[fp] = name
	reg.schemas[name] = schema
	return name
}

func (s *Synthesizer) objectSchema(t *models.TypeDescriptor, reg *schemaRegistry) *Schema {
	schema := &Schema{
		Type:       "object",
		Properties: make(map[string]*Schema, len(t.Properties)),
	}

	for i := range t.Properties {
		prop := &t.Properties[i]
		ps := s.schemaFor(prop.Type, reg)
		ps.Description = prop.Description

		for j := range prop.Constraints {
			for _, c := range prop.Constraints[j].Constraints {
				ps.applyConstraint(c.Name, c.Value)
			}
		}

		if ps.Ref == "" {
			ps.Example = ExampleFor(prop)
		}

		schema.Properties[prop.Name] = ps
		if prop.Required {
			schema.Required = append(schema.Required, prop.Name)
		}
	}

	sort.Strings(schema.Required)
	return schema
}

// memberSchema lowers one shallow union member name. Primitive names map to
// their type; anything else becomes a component reference.
func memberSchema(name string) *Schema {
	switch strings.ToLower(name) {
	case "string":
		return &Schema{Type: "string"}
	case "number", "int", "integer", "float":
		return &Schema{Type: "number"}
	case "boolean", "bool":
		return &Schema{Type: "boolean"}
	case "null", "undefined":
		return &Schema{Type: "string", Description: "null"}
	}
	return &Schema{Ref: schemaRefBase + name}
}

func enumBaseType(values []any) string {
	if len(values) == 0 {
		return "string"
	}
	switch values[0].(type) {
	case float64, int64, int:
		return "number"
	default:
		return "string"
	}
}

// fingerprint returns a structural identity for anonymous shapes. JSON
// marshaling sorts map keys, so identical shapes fingerprint identically.
func fingerprint(schema *Schema) string {
	raw, err := json.Marshal(schema)
	if err != nil {
		return fmt.Sprintf("%#v", schema)
	}
	return string(raw)
}
