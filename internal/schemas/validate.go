// Package schemas validates edited document content before it replaces stored content.
package schemas

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/application-tailor/internal/sections"
	"github.com/jonathan/application-tailor/internal/types"
)

//go:embed content.schema.json
var contentSchema []byte

const contentSchemaPath = "content.schema.json"

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

var loadSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(contentSchema))
	if err != nil {
		return nil, &SchemaLoadError{Path: contentSchemaPath, Message: "invalid schema", Cause: err}
	}
	return schema, nil
})

// ValidateContentJSON validates raw content JSON (the {"kind": ...} envelope) and decodes it.
// Structural problems and leftover placeholder or markup artifacts are both reported as a
// *ValidationError.
func ValidateContentJSON(data []byte) (types.Content, error) {
	if err := validateEnvelope(data); err != nil {
		return nil, err
	}
	content, err := types.UnmarshalContent(data)
	if err != nil {
		return nil, &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	if err := checkArtifacts(content); err != nil {
		return nil, err
	}
	return content, nil
}

// ValidateContent validates already decoded content.
func ValidateContent(c types.Content) error {
	if c == nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "content is required"}}}
	}
	data, err := types.MarshalContent(c)
	if err != nil {
		return fmt.Errorf("failed to encode content: %w", err)
	}
	if err := validateEnvelope(data); err != nil {
		return err
	}
	return checkArtifacts(c)
}

func validateEnvelope(data []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		// Not JSON at all.
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	if result.Valid() {
		return nil
	}

	// Build structured error
	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   fieldPath(desc.Field()),
			Message: desc.Description(),
		})
	}
	return validationErr
}

// checkArtifacts reports text that still carries placeholders or bold markers. Nothing is stripped.
func checkArtifacts(c types.Content) error {
	var errs []FieldError
	for _, f := range c.TextFields() {
		if sections.HasArtifacts(f.Value) {
			errs = append(errs, FieldError{
				Field:   f.Path,
				Message: "contains a placeholder or markup artifact",
			})
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// fieldPath turns "cv.experience.0.title" into "experience[0].title".
func fieldPath(field string) string {
	if field == "" || field == "(root)" {
		return "(root)"
	}
	parts := strings.Split(field, ".")
	if len(parts) > 1 && (parts[0] == "cv" || parts[0] == "cover_letter") {
		parts = parts[1:]
	}

	var sb strings.Builder
	for i, p := range parts {
		if _, err := strconv.Atoi(p); err == nil && i > 0 {
			sb.WriteString("[" + p + "]")
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(p)
	}
	return sb.String()
}
