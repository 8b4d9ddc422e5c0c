package makeservice

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gustavoguichard/make-service/pkg/jsonpath"
)

// TypedResponse wraps a raw *http.Response with schema-validated decode
// operations. All other response fields (StatusCode, Header, etc.) pass
// through via embedding.
//
// Body policy: the first decode drains and caches the raw body; every
// later decode of either kind reuses the cached bytes, so repeated or
// mixed JSON/Text decodes all observe the same payload instead of the
// second read hanging or returning empty data.
//
// A TypedResponse is created once per transport call and is not safe
// for concurrent decodes.
type TypedResponse struct {
	*http.Response

	raw  []byte
	read bool
}

// WrapResponse wraps a raw response in a TypedResponse.
func WrapResponse(resp *http.Response) *TypedResponse {
	return &TypedResponse{Response: resp}
}

// OK reports whether the status code is in the 2xx range.
func (r *TypedResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Bytes returns the raw response body, reading and caching it on first
// use.
func (r *TypedResponse) Bytes() ([]byte, error) {
	if r.read {
		return r.raw, nil
	}
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	r.raw = body
	r.read = true
	return body, nil
}

// setRaw replaces the cached body, marking it as read. Used by response
// transformers to rewrite the payload before decoding.
func (r *TypedResponse) setRaw(body []byte) {
	r.raw = body
	r.read = true
}

// JSON parses the response body as JSON. With no schema the parsed
// value is returned as-is. With a schema, the parsed value is passed
// through its validation; on failure a *DecodeError with message
// "Failed to parse response.json" and the issue list is returned.
func (r *TypedResponse) JSON(schema ...Schema) (any, error) {
	body, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, fmt.Errorf("response body is not valid JSON: %w", err)
	}
	return validateDecoded(value, schema, "Failed to parse response.json")
}

// Text returns the response body as a string, optionally validated
// against a schema. On validation failure a *DecodeError with message
// "Failed to parse response.text" is returned.
func (r *TypedResponse) Text(schema ...Schema) (any, error) {
	body, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	return validateDecoded(string(body), schema, "Failed to parse response.text")
}

// ExtractJSON extracts a single value from the JSON body using a
// JSONPath expression.
func (r *TypedResponse) ExtractJSON(path string) (string, error) {
	body, err := r.Bytes()
	if err != nil {
		return "", err
	}
	return jsonpath.Extract(string(body), path)
}

func validateDecoded(value any, schema []Schema, message string) (any, error) {
	if len(schema) == 0 || schema[0] == nil {
		return value, nil
	}
	result := schema[0].Validate(value)
	if len(result.Issues) > 0 {
		return nil, &DecodeError{Message: message, Issues: result.Issues}
	}
	return result.Value, nil
}

// DecodeJSON decodes and validates the response body as JSON, then
// converts the result into T via a JSON round trip when the validated
// value is not already a T.
func DecodeJSON[T any](r *TypedResponse, schema ...Schema) (T, error) {
	var zero T
	value, err := r.JSON(schema...)
	if err != nil {
		return zero, err
	}
	return convertDecoded[T](value)
}

// DecodeText decodes and validates the response body as text, then
// converts the result into T.
func DecodeText[T any](r *TypedResponse, schema ...Schema) (T, error) {
	var zero T
	value, err := r.Text(schema...)
	if err != nil {
		return zero, err
	}
	return convertDecoded[T](value)
}

func convertDecoded[T any](value any) (T, error) {
	var zero T
	if typed, ok := value.(T); ok {
		return typed, nil
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(encoded, &out); err != nil {
		return zero, err
	}
	return out, nil
}
