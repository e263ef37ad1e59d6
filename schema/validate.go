package schema

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Violation is one failed constraint.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationError lists every violation found in a value set.
type ValidationError struct {
	Violations []Violation `json:"violations"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks values against the JSON-Schema rendering of obj. It
// returns a *ValidationError when values do not conform.
func Validate(obj Object, values map[string]any) error {
	return ValidateMap(obj.Map(), values)
}

// ValidateMap checks values against an already rendered schema.
func ValidateMap(rendered map[string]any, values map[string]any) error {
	if values == nil {
		values = map[string]any{}
	}

	schemaLoader := gojsonschema.NewGoLoader(rendered)
	documentLoader := gojsonschema.NewGoLoader(values)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{}
	for _, re := range result.Errors() {
		field := re.Field()
		// Missing required properties are reported against the root.
		if prop, ok := re.Details()["property"].(string); ok && re.Type() == "required" {
			field = prop
		}
		verr.Violations = append(verr.Violations, Violation{Field: field, Message: re.Description()})
	}
	return verr
}
