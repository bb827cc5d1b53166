package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oasforge/oasforge/models"
)

func stringProp(name, format string) *models.PropertyDescriptor {
	return &models.PropertyDescriptor{
		Name: name,
		Type: &models.TypeDescriptor{Kind: models.KindPrimitive, Name: "string", Format: format},
	}
}

func TestExampleForFormatPrecedence(t *testing.T) {
	// A recognized declared format is checked before the field-name
	// heuristics; uri is not in the sample table, so a uri-formatted field
	// falls through to its name.
	assert.Equal(t, "user@example.com", ExampleFor(stringProp("email", "uri")))
	assert.Equal(t, "user@example.com", ExampleFor(stringProp("contactUrl", "email")))
	assert.Equal(t, "https://example.com", ExampleFor(stringProp("contactUrl", "")))
	assert.Equal(t, "https://example.com", ExampleFor(stringProp("link", "uri")))
	assert.Equal(t, "string", ExampleFor(stringProp("ref", "uri")), "uri with a neutral name falls to the type sample")
}

func TestExampleForFormatSamples(t *testing.T) {
	tests := []struct {
		format   string
		expected any
	}{
		{format: "email", expected: "user@example.com"},
		{format: "uuid", expected: "123e4567-e89b-12d3-a456-426614174000"},
		{format: "date", expected: "2024-01-15"},
		{format: "date-time", expected: "2024-01-15T09:30:00Z"},
		{format: "password", expected: "P@ssw0rd!"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExampleFor(stringProp("value", tt.format)))
		})
	}
}

func TestExampleForNameHeuristics(t *testing.T) {
	tests := []struct {
		name     string
		expected any
	}{
		{name: "email", expected: "user@example.com"},
		{name: "contactEmail", expected: "user@example.com"},
		{name: "first_name", expected: "John"},
		{name: "lastName", expected: "Doe"},
		{name: "username", expected: "johndoe"},
		{name: "phoneNumber", expected: "+1-202-555-0123"},
		{name: "contactUrl", expected: "https://example.com"},
		{name: "userId", expected: "123e4567-e89b-12d3-a456-426614174000"},
		{name: "createdDate", expected: "2024-01-15T09:30:00Z"},
		{name: "status", expected: "active"},
		{name: "role", expected: "admin"},
		{name: "totalAmount", expected: 19.99},
		{name: "itemCount", expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExampleFor(stringProp(tt.name, "")))
		})
	}
}

func TestExampleForBooleanPrefixHeuristic(t *testing.T) {
	prop := &models.PropertyDescriptor{
		Name: "isVerified",
		Type: &models.TypeDescriptor{Kind: models.KindPrimitive, Name: "boolean"},
	}
	assert.Equal(t, true, ExampleFor(prop))
}

func TestExampleForTypeFallback(t *testing.T) {
	tests := []struct {
		typeName string
		expected any
	}{
		{typeName: "string", expected: "string"},
		{typeName: "number", expected: 1},
		{typeName: "boolean", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			prop := &models.PropertyDescriptor{
				Name: "opaque",
				Type: &models.TypeDescriptor{Kind: models.KindPrimitive, Name: tt.typeName},
			}
			assert.Equal(t, tt.expected, ExampleFor(prop))
		})
	}
}

func TestExampleForConstraintFormat(t *testing.T) {
	// A format mapped from a validation annotation participates when the
	// resolved type itself carries none.
	prop := &models.PropertyDescriptor{
		Name: "value",
		Type: &models.TypeDescriptor{Kind: models.KindPrimitive, Name: "string"},
		Constraints: []models.ConstraintDescriptor{{
			Kind:        "IsEmail",
			Constraints: []models.SchemaConstraint{{Name: "format", Value: "email"}},
		}},
	}
	assert.Equal(t, "user@example.com", ExampleFor(prop))
}

func TestExampleForStructuralShapes(t *testing.T) {
	t.Run("array wraps element sample", func(t *testing.T) {
		prop := &models.PropertyDescriptor{
			Name: "emails",
			Type: &models.TypeDescriptor{
				Kind:    models.KindArray,
				IsArray: true,
				Elem:    &models.TypeDescriptor{Kind: models.KindPrimitive, Name: "string", Format: "email"},
			},
		}
		assert.Equal(t, []any{"user@example.com"}, ExampleFor(prop))
	})

	t.Run("enum uses first value", func(t *testing.T) {
		prop := &models.PropertyDescriptor{
			Name: "state",
			Type: &models.TypeDescriptor{Kind: models.KindEnum, Name: "State", EnumValues: []any{"open", "closed"}},
		}
		assert.Equal(t, "open", ExampleFor(prop))
	})

	t.Run("object assembles per-property samples", func(t *testing.T) {
		prop := &models.PropertyDescriptor{
			Name: "owner",
			Type: &models.TypeDescriptor{
				Kind: models.KindObject,
				Name: "Owner",
				Properties: []models.PropertyDescriptor{
					*stringProp("email", "email"),
					{Name: "opaque", Type: &models.TypeDescriptor{Kind: models.KindUnknown}},
				},
			},
		}
		assert.Equal(t, map[string]any{"email": "user@example.com"}, ExampleFor(prop))
	})
}

func TestExampleForNoMatch(t *testing.T) {
	prop := &models.PropertyDescriptor{
		Name: "opaque",
		Type: &models.TypeDescriptor{Kind: models.KindUnknown, Name: "External"},
	}
	assert.Nil(t, ExampleFor(prop))

	assert.Nil(t, ExampleFor(&models.PropertyDescriptor{Name: "untyped"}))
}
