package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath is the path to the JSON Schema file.
	// If empty, only structural invariant checks run.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// Validate checks the collection against the invariants the store relies on:
// positive unique ids, non-empty descriptions, known priorities, and the
// completed/completed_at coupling. When a schema path is provided and the
// schema file is readable, field-level JSON Schema validation runs as well;
// an unavailable schema degrades to a warning.
func (c Collection) Validate(opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	c.validateInvariants(result)

	if opts.SchemaPath != "" {
		validateWithSchema(c, opts.SchemaPath, result)
	}

	return result
}

// validateInvariants performs the structural checks a schema cannot express
// (id uniqueness, cross-field coupling) plus per-task field checks.
func (c Collection) validateInvariants(result *ValidationResult) {
	seen := make(map[int]int, len(c))
	for i := range c {
		t := &c[i]
		path := fmt.Sprintf("[%d]", i)

		if t.ID < 1 {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + ".id",
				Err:  fmt.Errorf("must be a positive integer, got %d", t.ID),
			})
		} else if prev, dup := seen[t.ID]; dup {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + ".id",
				Err:  fmt.Errorf("duplicate id %d (also at [%d])", t.ID, prev),
			})
		} else {
			seen[t.ID] = i
		}

		if strings.TrimSpace(t.Description) == "" {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + ".description",
				Err:  fmt.Errorf("must not be empty"),
			})
		}

		if !t.Priority.Valid() {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + ".priority",
				Err:  fmt.Errorf("invalid priority %q, must be one of: low, medium, high, urgent", t.Priority),
			})
		}

		if t.Completed && t.CompletedAt == nil {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + ".completed_at",
				Err:  fmt.Errorf("must be set when completed is true"),
			})
		}
		if !t.Completed && t.CompletedAt != nil {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + ".completed_at",
				Err:  fmt.Errorf("must be null when completed is false"),
			})
		}
	}
}

// validateWithSchema attempts JSON Schema validation.
func validateWithSchema(c Collection, schemaPath string, result *ValidationResult) {
	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema path: %v", err))
		return
	}

	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("schema file not found: %s", absPath))
		} else {
			result.Warnings = append(result.Warnings, fmt.Sprintf("failed to read schema file: %v", err))
		}
		return
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	schema, err := compiler.Compile(absPath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema file: %v", err))
		return
	}

	result.UsedSchema = true

	// Marshal the collection back to JSON for validation
	data, err := json.Marshal(c)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("failed to marshal collection for validation: %w", err),
		})
		return
	}

	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("failed to unmarshal collection for validation: %w", err),
		})
		return
	}

	if err := schema.Validate(obj); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
}

func appendSchemaErrors(result *ValidationResult, err error) {
	if err == nil {
		return
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}

	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	parts := strings.Split(ptr, "/")
	path := ""
	for _, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}

	return path
}
