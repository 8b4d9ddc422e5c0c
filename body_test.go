package makeservice

import (
	"bytes"
	"net/url"
	"strings"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected Kind
	}{
		{name: "Nil", value: nil, expected: KindNil},
		{name: "Bool", value: true, expected: KindBool},
		{name: "Int", value: 42, expected: KindInt},
		{name: "Uint", value: uint(42), expected: KindUint},
		{name: "Float", value: 1.5, expected: KindFloat},
		{name: "String", value: "x", expected: KindString},
		{name: "Bytes", value: []byte("x"), expected: KindBytes},
		{name: "Slice", value: []int{1}, expected: KindSlice},
		{name: "Array", value: [2]int{1, 2}, expected: KindArray},
		{name: "Map", value: map[string]any{}, expected: KindMap},
		{name: "Struct", value: struct{ A int }{1}, expected: KindStruct},
		{name: "Struct pointer", value: &struct{ A int }{1}, expected: KindStruct},
		{name: "Func", value: func() {}, expected: KindFunc},
		{name: "Chan", value: make(chan int), expected: KindChan},
		{name: "Reader", value: strings.NewReader("x"), expected: KindReader},
		{name: "Buffer", value: bytes.NewBufferString("x"), expected: KindReader},
		{name: "URLValues", value: url.Values{}, expected: KindValues},
		{name: "URL", value: &url.URL{Host: "x"}, expected: KindURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.value); got != tt.expected {
				t.Errorf("KindOf(%v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestEnsureBody(t *testing.T) {
	tests := []struct {
		name     string
		body     any
		expected any
	}{
		{
			name:     "Nil stays nil",
			body:     nil,
			expected: nil,
		},
		{
			name:     "String passes through unchanged",
			body:     "x",
			expected: "x",
		},
		{
			name:     "Map is JSON-serialized",
			body:     map[string]int{"a": 1},
			expected: `{"a":1}`,
		},
		{
			name:     "Slice is JSON-serialized",
			body:     []int{1, 2},
			expected: `[1,2]`,
		},
		{
			name:     "Number is JSON-serialized",
			body:     42,
			expected: `42`,
		},
		{
			name:     "Bool is JSON-serialized",
			body:     true,
			expected: `true`,
		},
		{
			name:     "Struct is JSON-serialized",
			body:     struct{ A int }{1},
			expected: `{"A":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EnsureBody(tt.body)
			if err != nil {
				t.Fatalf("EnsureBody returned error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("EnsureBody(%v) = %v, want %v", tt.body, got, tt.expected)
			}
		})
	}
}

func TestEnsureBodyBinaryPassThrough(t *testing.T) {
	raw := []byte{0x1, 0x2, 0x3}
	got, err := EnsureBody(raw)
	if err != nil {
		t.Fatalf("EnsureBody returned error: %v", err)
	}
	if b, ok := got.([]byte); !ok || &b[0] != &raw[0] {
		t.Errorf("Expected byte slice to pass through by reference, got %v", got)
	}

	reader := strings.NewReader("stream")
	got, err = EnsureBody(reader)
	if err != nil {
		t.Fatalf("EnsureBody returned error: %v", err)
	}
	if got != reader {
		t.Errorf("Expected reader to pass through by reference, got %v", got)
	}

	values := url.Values{"a": []string{"1"}}
	got, err = EnsureBody(values)
	if err != nil {
		t.Fatalf("EnsureBody returned error: %v", err)
	}
	if _, ok := got.(url.Values); !ok {
		t.Errorf("Expected url.Values to pass through, got %T", got)
	}
}
