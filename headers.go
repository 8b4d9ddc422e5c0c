package makeservice

import (
	"fmt"
	"net/http"
)

// HeaderSource is any value that can contribute headers to a merge.
// Accepted shapes are http.Header, map[string]string, map[string]any,
// and [][2]string (an ordered list of name/value pairs). A nil source
// is skipped and any other shape is ignored.
type HeaderSource = any

// deleteSentinel marks a header for removal during a merge. A nil value
// in a map[string]any source has the same effect.
const deleteSentinel = "undefined"

// MergeHeaders combines any number of header sources into a single
// http.Header. Sources are processed left to right with last-write-wins
// semantics: a later source overwrites same-name entries from earlier
// sources. A value equal to the deletion sentinel removes the entry
// instead of setting it. Name comparison is case-insensitive, delegated
// to http.Header's canonical key normalization.
func MergeHeaders(sources ...HeaderSource) http.Header {
	merged := make(http.Header)

	for _, source := range sources {
		switch src := source.(type) {
		case nil:
			continue
		case http.Header:
			for name, values := range src {
				applyValues(merged, name, values)
			}
		case map[string][]string:
			for name, values := range src {
				applyValues(merged, name, values)
			}
		case map[string]string:
			for name, value := range src {
				applyValue(merged, name, value, true)
			}
		case map[string]any:
			for name, value := range src {
				if value == nil {
					merged.Del(name)
					continue
				}
				applyValue(merged, name, fmt.Sprint(value), true)
			}
		case [][2]string:
			seen := make(map[string]bool, len(src))
			for _, pair := range src {
				name, value := pair[0], pair[1]
				// Repeated names within one ordered source accumulate
				// rather than overwrite, matching native header
				// collection construction from an entry list.
				first := !seen[http.CanonicalHeaderKey(name)]
				seen[http.CanonicalHeaderKey(name)] = true
				applyValue(merged, name, value, first)
			}
		}
	}

	return merged
}

func applyValues(h http.Header, name string, values []string) {
	for i, value := range values {
		if applyValue(h, name, value, i == 0) {
			return
		}
	}
}

// applyValue sets or deletes one header entry. It reports whether the
// value was the deletion sentinel.
func applyValue(h http.Header, name, value string, replace bool) bool {
	if value == deleteSentinel {
		h.Del(name)
		return true
	}
	if replace {
		h.Set(name, value)
	} else {
		h.Add(name, value)
	}
	return false
}
