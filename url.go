package makeservice

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ComposeURL joins a base URL and a path with exactly one separator,
// collapsing any run of consecutive slashes that is not part of a
// scheme separator ("://").
func ComposeURL(base, path string) string {
	if base == "" {
		return collapseSlashes(path)
	}
	if path == "" {
		return collapseSlashes(base)
	}
	return collapseSlashes(base + "/" + path)
}

func collapseSlashes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '/' && b.Len() > 0 {
			out := b.String()
			if out[len(out)-1] == '/' {
				// Keep the second slash of "://", drop everything else.
				if len(out) >= 2 && out[len(out)-2] == ':' {
					b.WriteByte(c)
				}
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// AddQuery appends query parameters to a URL string. A nil query
// returns the URL unchanged. The query may be a map[string]string, an
// ordered [][2]string pair list, a pre-encoded string (with or without
// a leading "?"), or a url.Values. Existing query strings are preserved
// and new pairs are appended with "&".
func AddQuery(rawURL string, query any) (string, error) {
	encoded, err := encodeQuery(query)
	if err != nil {
		return "", err
	}
	if encoded == "" {
		return rawURL, nil
	}
	if strings.Contains(rawURL, "?") {
		return rawURL + "&" + encoded, nil
	}
	return rawURL + "?" + encoded, nil
}

// AddQueryURL is AddQuery for URL values: the encoded pairs are
// appended to a copy of u's RawQuery, preserving the URL-typed shape of
// the input. A nil query returns u unchanged.
func AddQueryURL(u *url.URL, query any) (*url.URL, error) {
	encoded, err := encodeQuery(query)
	if err != nil {
		return nil, err
	}
	if encoded == "" {
		return u, nil
	}
	out := *u
	if out.RawQuery != "" {
		out.RawQuery += "&" + encoded
	} else {
		out.RawQuery = encoded
	}
	return &out, nil
}

func encodeQuery(query any) (string, error) {
	switch q := query.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimPrefix(q, "?"), nil
	case url.Values:
		return q.Encode(), nil
	case map[string]string:
		values := make(url.Values, len(q))
		for key, value := range q {
			values.Set(key, value)
		}
		return values.Encode(), nil
	case [][2]string:
		// Pair lists keep their order; url.Values.Encode would sort.
		var b strings.Builder
		for i, pair := range q {
			if i > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(pair[0]))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(pair[1]))
		}
		return b.String(), nil
	default:
		return "", fmt.Errorf("unsupported query type %T", query)
	}
}

// ReplaceParams substitutes ":name" placeholders in a URL with the
// given values. Only the first occurrence of each placeholder is
// replaced, and only when it is followed by "/", "?", "#" or the end of
// the string. Unresolved placeholders are left as-is. Numeric values
// are coerced to their decimal string form. A nil or empty params map
// returns the URL unmodified.
func ReplaceParams(rawURL string, params map[string]any) string {
	if len(params) == 0 {
		return rawURL
	}
	for key, value := range params {
		rawURL = replaceParam(rawURL, key, stringifyParam(value))
	}
	return rawURL
}

func replaceParam(s, key, value string) string {
	token := ":" + key
	from := 0
	for {
		idx := strings.Index(s[from:], token)
		if idx < 0 {
			return s
		}
		idx += from
		end := idx + len(token)
		if end == len(s) || s[end] == '/' || s[end] == '?' || s[end] == '#' {
			return s[:idx] + value + s[end:]
		}
		from = idx + 1
	}
}

func stringifyParam(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", v)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
