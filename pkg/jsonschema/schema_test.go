package jsonschema

import (
	"testing"
)

const userSchema = `{
	"type": "object",
	"required": ["id", "name"],
	"properties": {
		"id": { "type": "integer" },
		"name": { "type": "string" }
	}
}`

func TestCompile(t *testing.T) {
	if _, err := Compile(userSchema); err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}

	if _, err := Compile(`{"type": 42}`); err == nil {
		t.Error("Expected error for invalid schema document")
	}
}

func TestSchemaValidate(t *testing.T) {
	schema := MustCompile(userSchema)

	t.Run("Valid payload", func(t *testing.T) {
		value := map[string]any{"id": float64(1), "name": "Ada"}
		result := schema.Validate(value)
		if len(result.Issues) != 0 {
			t.Fatalf("Expected no issues, got %v", result.Issues)
		}
		if result.Value == nil {
			t.Error("Expected validated value back")
		}
	})

	t.Run("Invalid payload carries issues", func(t *testing.T) {
		value := map[string]any{"id": "not-an-integer", "name": "Ada"}
		result := schema.Validate(value)
		if len(result.Issues) == 0 {
			t.Fatal("Expected at least one issue")
		}
	})

	t.Run("Issue paths name the failing location", func(t *testing.T) {
		value := map[string]any{"id": "nope", "name": "Ada"}
		result := schema.Validate(value)

		found := false
		for _, issue := range result.Issues {
			if len(issue.Path) == 1 && issue.Path[0] == "id" {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected an issue with path [id], got %v", result.Issues)
		}
	})
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected MustCompile to panic on invalid schema")
		}
	}()
	MustCompile(`{`)
}
