package makeservice

import "fmt"

// Issue describes one schema validation failure.
type Issue struct {
	Message string
	Path    []string
}

// Result is the outcome of validating a value. A successful validation
// carries the (possibly transformed) value and no issues; a failed one
// carries at least one issue.
type Result struct {
	Value  any
	Issues []Issue
}

// Schema is the canonical validator capability: it inspects an unknown
// value and returns either the validated value or a list of issues.
type Schema interface {
	Validate(v any) Result
}

// SchemaFunc adapts a plain function to the Schema interface.
type SchemaFunc func(v any) Result

func (f SchemaFunc) Validate(v any) Result { return f(v) }

// Parser is the legacy validator capability: parse a value or fail
// with an error.
type Parser interface {
	Parse(v any) (any, error)
}

// ParserFunc adapts a plain function to the Parser interface.
type ParserFunc func(v any) (any, error)

func (f ParserFunc) Parse(v any) (any, error) { return f(v) }

type parserSchema struct {
	parser Parser
}

func (s parserSchema) Validate(v any) Result {
	value, err := s.parser.Parse(v)
	if err != nil {
		return Result{Issues: []Issue{{Message: err.Error()}}}
	}
	return Result{Value: value}
}

// AsSchema detects which validator capability a value implements and
// normalizes it to the canonical Schema contract. It accepts a Schema,
// a Parser, or a bare function of either shape.
func AsSchema(v any) (Schema, error) {
	switch s := v.(type) {
	case Schema:
		return s, nil
	case Parser:
		return parserSchema{parser: s}, nil
	case func(any) Result:
		return SchemaFunc(s), nil
	case func(any) (any, error):
		return parserSchema{parser: ParserFunc(s)}, nil
	default:
		return nil, fmt.Errorf("value of type %T implements neither Validate nor Parse", v)
	}
}
