// Package jsonpath extracts values from JSON documents using JSONPath
// expressions, backed by gjson.
package jsonpath

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Extract returns the value at a JSONPath expression in a JSON string,
// rendered as a string. Null values render as "null". Missing paths are
// an error.
func Extract(json, path string) (string, error) {
	if json == "" {
		return "", fmt.Errorf("empty JSON string")
	}
	if path == "" {
		return "", fmt.Errorf("empty JSONPath expression")
	}

	result := gjson.Get(json, toGjsonPath(path))
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}
	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// toGjsonPath converts a JSONPath expression to gjson's dotted form:
// $.users[0].name becomes users.0.name. Bracket property access with
// single or double quotes is supported; filter expressions are not.
func toGjsonPath(path string) string {
	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return "@this"
	}

	replacer := strings.NewReplacer("['", ".", "']", "", `["`, ".", `"]`, "", "[", ".", "]", "")
	path = replacer.Replace(path)
	return strings.TrimPrefix(path, ".")
}
