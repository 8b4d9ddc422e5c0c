// Package keycase converts strings and mapping keys between camelCase,
// kebab-case and snake_case.
//
// Strings are segmented into words by a fixed rule: a run of two or
// more uppercase letters ending at an uppercase-then-lowercase boundary
// or at a word boundary (acronyms such as "HTTP" in "HTTPServer"), an
// optional uppercase letter followed by lowercase letters and digits, a
// single uppercase letter, or a run of digits.
//
// Known limitation: keys mixing digits and case boundaries do not
// round-trip ("a2B" segments as "a2", "B", so kebab and back yields
// "a2B" but "A2B" segments differently). This matches the documented
// segmentation rule and is intentionally not "fixed".
package keycase

import "strings"

// ToCamel converts a string to camelCase.
func ToCamel(s string) string {
	words := segments(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, word := range words {
		b.WriteString(capitalize(word))
	}
	out := b.String()
	if out == "" {
		return out
	}
	return strings.ToLower(out[:1]) + out[1:]
}

// ToKebab converts a string to kebab-case.
func ToKebab(s string) string {
	return joinLower(segments(s), "-")
}

// ToSnake converts a string to snake_case.
func ToSnake(s string) string {
	return joinLower(segments(s), "_")
}

// DeepToCamel deep-transforms every mapping key in v to camelCase.
func DeepToCamel(v any) any { return DeepMap(v, ToCamel) }

// DeepToKebab deep-transforms every mapping key in v to kebab-case.
func DeepToKebab(v any) any { return DeepMap(v, ToKebab) }

// DeepToSnake deep-transforms every mapping key in v to snake_case.
func DeepToSnake(v any) any { return DeepMap(v, ToSnake) }

// DeepMap applies fn to every mapping key in v, recursing into nested
// maps and slices. Only keys are renamed: slice order, length and all
// leaf values are preserved. Values that are neither maps nor slices
// are returned unchanged.
func DeepMap(v any, fn func(string) string) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for key, value := range t {
			out[fn(key)] = DeepMap(value, fn)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(t))
		for key, value := range t {
			out[fn(key)] = value
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, value := range t {
			out[i] = DeepMap(value, fn)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(t))
		for i, value := range t {
			out[i] = DeepMap(value, fn).(map[string]any)
		}
		return out
	default:
		return v
	}
}

func joinLower(words []string, sep string) string {
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	return strings.Join(words, sep)
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}

// segments splits s into words per the package segmentation rule.
// Non-alphanumeric characters act as separators and are dropped.
func segments(s string) []string {
	var words []string
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case isUpper(c):
			words = append(words, scanUpper(s, &i))
		case isLower(c):
			words = append(words, scanLowerDigits(s, &i))
		case isDigit(c):
			words = append(words, scanDigits(s, &i))
		default:
			i++
		}
	}
	return words
}

// scanUpper consumes one word starting at an uppercase letter: a 2+
// acronym run when the boundary rule allows it, an Upper+lowers+digits
// word, or a single uppercase letter.
func scanUpper(s string, i *int) string {
	start := *i
	run := start
	for run < len(s) && isUpper(s[run]) {
		run++
	}
	if run-start >= 2 {
		// Longest acronym prefix whose end sits at a valid boundary.
		for end := run; end-start >= 2; end-- {
			if acronymBoundary(s, end) {
				*i = end
				return s[start:end]
			}
		}
	}
	if *i+1 < len(s) && isLower(s[*i+1]) {
		*i++
		word := scanLowerDigits(s, i)
		return s[start:start+1] + word
	}
	*i++
	return s[start : start+1]
}

// acronymBoundary reports whether position p can terminate an acronym
// run: end of string, a non-alphanumeric separator, or an uppercase
// letter starting a new Upper+lowercase word.
func acronymBoundary(s string, p int) bool {
	if p == len(s) {
		return true
	}
	c := s[p]
	if !isUpper(c) && !isLower(c) && !isDigit(c) {
		return true
	}
	return isUpper(c) && p+1 < len(s) && isLower(s[p+1])
}

func scanLowerDigits(s string, i *int) string {
	start := *i
	for *i < len(s) && isLower(s[*i]) {
		*i++
	}
	for *i < len(s) && isDigit(s[*i]) {
		*i++
	}
	return s[start:*i]
}

func scanDigits(s string, i *int) string {
	start := *i
	for *i < len(s) && isDigit(s[*i]) {
		*i++
	}
	return s[start:*i]
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
