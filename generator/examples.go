package generator

import (
	"strings"

	"github.com/oasforge/oasforge/models"
)

// formatSamples are the canonical sample literals for recognized declared
// formats. A declared format outside this table does not participate in
// example resolution. The uri format is deliberately absent: link-like
// fields resolve through the name heuristics, so an email-named field
// formatted as a URI still gets the email sample.
var formatSamples = map[string]any{
	"email":     "user@example.com",
	"uuid":      "123e4567-e89b-12d3-a456-426614174000",
	"date":      "2024-01-15",
	"date-time": "2024-01-15T09:30:00Z",
	"password":  "P@ssw0rd!",
}

// nameHeuristic is one row of the ordered field-name table. Names are
// normalized (lowercased, underscores removed) before matching; the first
// matching row wins.
type nameHeuristic struct {
	match func(name string) bool
	value any
}

var nameHeuristics = []nameHeuristic{
	{contains("email"), "user@example.com"},
	{contains("firstname"), "John"},
	{contains("lastname"), "Doe"},
	{contains("username"), "johndoe"},
	{contains("phone"), "+1-202-555-0123"},
	{contains("address"), "123 Main Street"},
	{contains("city"), "Springfield"},
	{contains("country"), "United States"},
	{containsAny("zip", "postal"), "62704"},
	{containsAny("url", "uri", "link"), "https://example.com"},
	{hasSuffix("id"), "123e4567-e89b-12d3-a456-426614174000"},
	{containsAny("date", "time"), "2024-01-15T09:30:00Z"},
	{contains("status"), "active"},
	{contains("role"), "admin"},
	{contains("description"), "A sample description"},
	{contains("title"), "Sample Title"},
	{containsAny("price", "amount"), 19.99},
	{containsAny("quantity", "count"), 5},
	{hasPrefix("is", "has"), true},
}

// typeSamples are the bare fallbacks per primitive schema type.
var typeSamples = map[string]any{
	"string":  "string",
	"number":  1,
	"boolean": true,
}

// ExampleFor produces a heuristic example value for a property. Resolution
// order, first match wins: recognized declared format, field-name heuristic,
// bare type fallback, nil. The ordering is a precedence contract; tests pin
// it.
func ExampleFor(prop *models.PropertyDescriptor) any {
	return exampleFor(prop.Name, declaredFormat(prop), prop.Type)
}

func exampleFor(name, format string, t *models.TypeDescriptor) any {
	if t == nil {
		return nil
	}

	switch t.Kind {
	case models.KindArray:
		elem := exampleFor(name, elemFormat(t.Elem), t.Elem)
		if elem == nil {
			return nil
		}
		return []any{elem}

	case models.KindEnum:
		if len(t.EnumValues) > 0 {
			return t.EnumValues[0]
		}
		return nil

	case models.KindObject:
		obj := make(map[string]any, len(t.Properties))
		for i := range t.Properties {
			prop := &t.Properties[i]
			if v := ExampleFor(prop); v != nil {
				obj[prop.Name] = v
			}
		}
		if len(obj) == 0 {
			return nil
		}
		return obj
	}

	if sample, ok := formatSamples[format]; ok {
		return sample
	}

	norm := strings.ReplaceAll(strings.ToLower(name), "_", "")
	for _, h := range nameHeuristics {
		if h.match(norm) {
			return h.value
		}
	}

	if t.Kind == models.KindPrimitive {
		if sample, ok := typeSamples[t.Name]; ok {
			return sample
		}
	}

	return nil
}

// declaredFormat returns the property's declared format: the resolved type's
// nominal format first, then any format constraint mapped from a validation
// annotation.
func declaredFormat(prop *models.PropertyDescriptor) string {
	if prop.Type != nil && prop.Type.Format != "" {
		return prop.Type.Format
	}
	for i := range prop.Constraints {
		for _, c := range prop.Constraints[i].Constraints {
			if c.Name == "format" {
				if text, ok := c.Value.(string); ok {
					return text
				}
			}
		}
	}
	return ""
}

func elemFormat(t *models.TypeDescriptor) string {
	if t == nil {
		return ""
	}
	return t.Format
}

func contains(sub string) func(string) bool {
	return func(name string) bool { return strings.Contains(name, sub) }
}

func containsAny(subs ...string) func(string) bool {
	return func(name string) bool {
		for _, sub := range subs {
			if strings.Contains(name, sub) {
				return true
			}
		}
		return false
	}
}

func hasSuffix(suffix string) func(string) bool {
	return func(name string) bool { return strings.HasSuffix(name, suffix) }
}

func hasPrefix(prefixes ...string) func(string) bool {
	return func(name string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(name, p) {
				return true
			}
		}
		return false
	}
}
