package analyzer

import (
	"strconv"
	"strings"

	"github.com/oasforge/oasforge/models"
)

// Annotation names with routing significance elsewhere in the analyzer.
const (
	annotationOptional = "IsOptional"
	validationPrefix   = "Is"
)

// constraintRule builds the schema constraints for one recognized validation
// annotation from its parsed arguments.
type constraintRule func(args []any) []models.SchemaConstraint

// annotationRules is the static table from validation-annotation name to its
// constraint-construction rule. Adding support for a new annotation means
// adding a row here; callers never branch on annotation identity.
var annotationRules = map[string]constraintRule{
	"MinLength":    single("minLength"),
	"MaxLength":    single("maxLength"),
	"Length":       lengthRule,
	"Min":          single("minimum"),
	"Max":          single("maximum"),
	"IsPositive":   fixed(models.SchemaConstraint{Name: "minimum", Value: int64(0)}, models.SchemaConstraint{Name: "exclusiveMinimum", Value: true}),
	"IsNegative":   fixed(models.SchemaConstraint{Name: "maximum", Value: int64(0)}, models.SchemaConstraint{Name: "exclusiveMaximum", Value: true}),
	"Matches":      patternRule,
	"IsEmail":      format("email"),
	"IsURL":        format("uri"),
	"IsUUID":       format("uuid"),
	"IsDateString": format("date-time"),
	"IsISO8601":    format("date-time"),
	"ArrayMinSize": single("minItems"),
	"ArrayMaxSize": single("maxItems"),
	"IsIn":         enumRule,

	// Recognized but carrying no schema semantics of their own: the type
	// resolver already encodes what they assert.
	"IsString":   empty,
	"IsNumber":   empty,
	"IsInt":      empty,
	"IsBoolean":  empty,
	"IsArray":    empty,
	"IsEnum":     empty,
	"IsNotEmpty": empty,
	"IsOptional": empty,
	"IsDefined":  empty,
}

// MapAnnotation maps one validation annotation to a constraint descriptor.
// Recognized names resolve through the rule table; unrecognized names with
// the "Is" prefix yield an empty-constraint descriptor (presence preserved,
// semantics unspecified); everything else yields nil and is silently
// ignored.
func MapAnnotation(name string, args []string) *models.ConstraintDescriptor {
	rule, ok := annotationRules[name]
	if !ok {
		if strings.HasPrefix(name, validationPrefix) {
			return &models.ConstraintDescriptor{Kind: name, Args: args}
		}
		return nil
	}

	return &models.ConstraintDescriptor{
		Kind:        name,
		Args:        args,
		Constraints: rule(parseArgs(args)),
	}
}

func single(constraint string) constraintRule {
	return func(args []any) []models.SchemaConstraint {
		if len(args) == 0 {
			return nil
		}
		return []models.SchemaConstraint{{Name: constraint, Value: args[0]}}
	}
}

func fixed(constraints ...models.SchemaConstraint) constraintRule {
	return func([]any) []models.SchemaConstraint {
		return constraints
	}
}

func format(value string) constraintRule {
	return fixed(models.SchemaConstraint{Name: "format", Value: value})
}

func empty([]any) []models.SchemaConstraint {
	return nil
}

// lengthRule maps Length(min) or Length(min, max).
func lengthRule(args []any) []models.SchemaConstraint {
	var out []models.SchemaConstraint
	if len(args) > 0 {
		out = append(out, models.SchemaConstraint{Name: "minLength", Value: args[0]})
	}
	if len(args) > 1 {
		out = append(out, models.SchemaConstraint{Name: "maxLength", Value: args[1]})
	}
	return out
}

// patternRule strips the regex literal delimiters from the argument and emits
// a pattern constraint.
func patternRule(args []any) []models.SchemaConstraint {
	if len(args) == 0 {
		return nil
	}
	text, ok := args[0].(string)
	if !ok {
		return nil
	}
	return []models.SchemaConstraint{{Name: "pattern", Value: stripPatternDelimiters(text)}}
}

// enumRule emits the literal argument values as an enum constraint.
func enumRule(args []any) []models.SchemaConstraint {
	if len(args) == 0 {
		return nil
	}
	return []models.SchemaConstraint{{Name: "enum", Value: args}}
}

// parseArgs converts raw decorator argument text: numeric-looking text parses
// to a number, everything else stays literal (malformed values are advisory,
// never rejected).
func parseArgs(args []string) []any {
	out := make([]any, 0, len(args))
	for _, arg := range args {
		out = append(out, parseArg(arg))
	}
	return out
}

func parseArg(arg string) any {
	trimmed := strings.Trim(strings.TrimSpace(arg), `"'`)
	if intVal, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return intVal
	}
	if floatVal, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return floatVal
	}
	return trimmed
}

// stripPatternDelimiters removes the surrounding regex-literal slashes and
// any trailing flags ("/^[a-z]+$/i" -> "^[a-z]+$").
func stripPatternDelimiters(pattern string) string {
	if !strings.HasPrefix(pattern, "/") {
		return pattern
	}
	end := strings.LastIndex(pattern, "/")
	if end <= 0 {
		return pattern
	}
	return pattern[1:end]
}
