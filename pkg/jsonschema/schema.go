// Package jsonschema compiles JSON Schema documents into validators
// implementing the makeservice Schema capability.
package jsonschema

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	makeservice "github.com/gustavoguichard/make-service"
)

// Schema is a compiled JSON Schema usable as a makeservice.Schema.
type Schema struct {
	compiled *jsonschema.Schema
}

// Compile compiles a JSON Schema document.
func Compile(schemaJSON string) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &Schema{compiled: compiled}, nil
}

// MustCompile is like Compile but panics on error, for package-level
// schema declarations.
func MustCompile(schemaJSON string) *Schema {
	schema, err := Compile(schemaJSON)
	if err != nil {
		panic(err)
	}
	return schema
}

// Validate implements makeservice.Schema. On success the input value is
// returned unchanged; on failure every leaf cause becomes one issue
// with its instance location as the path.
func (s *Schema) Validate(v any) makeservice.Result {
	err := s.compiled.Validate(v)
	if err == nil {
		return makeservice.Result{Value: v}
	}

	var validationErr *jsonschema.ValidationError
	if ve, ok := err.(*jsonschema.ValidationError); ok {
		validationErr = ve
	} else {
		return makeservice.Result{Issues: []makeservice.Issue{{Message: err.Error()}}}
	}

	return makeservice.Result{Issues: collectIssues(validationErr)}
}

// collectIssues flattens a validation error tree into an ordered issue
// list, parents before children.
func collectIssues(err *jsonschema.ValidationError) []makeservice.Issue {
	var issues []makeservice.Issue
	if err.Message != "" {
		issues = append(issues, makeservice.Issue{
			Message: err.Message,
			Path:    splitLocation(err.InstanceLocation),
		})
	}
	for _, cause := range err.Causes {
		issues = append(issues, collectIssues(cause)...)
	}
	return issues
}

func splitLocation(location string) []string {
	location = strings.TrimPrefix(location, "/")
	if location == "" {
		return nil
	}
	return strings.Split(location, "/")
}
