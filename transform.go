package makeservice

import (
	"encoding/json"
	"net/url"

	"github.com/gustavoguichard/make-service/pkg/keycase"
)

// RequestTransformer mutates an outgoing request descriptor before
// headers are merged and the request is dispatched.
type RequestTransformer func(o *RequestOptions) error

// ResponseTransformer adapts a TypedResponse after it is produced.
type ResponseTransformer func(r *TypedResponse) (*TypedResponse, error)

// TransformRequestKeys returns a request transformer that deep-renames
// the keys of the request's query and JSON-like body with fn, typically
// one of the keycase transforms. Pre-encoded query strings and binary
// bodies pass through untouched.
func TransformRequestKeys(fn func(string) string) RequestTransformer {
	return func(o *RequestOptions) error {
		o.Query = transformQueryKeys(o.Query, fn)
		o.Body = keycase.DeepMap(o.Body, fn)
		return nil
	}
}

// TransformResponseKeys returns a response transformer that deep-renames
// the keys of the response's JSON payload with fn before any decode or
// schema validation sees it. Non-JSON payloads are left alone.
func TransformResponseKeys(fn func(string) string) ResponseTransformer {
	return func(r *TypedResponse) (*TypedResponse, error) {
		body, err := r.Bytes()
		if err != nil {
			return nil, err
		}
		if len(body) == 0 {
			return r, nil
		}
		var value any
		if err := json.Unmarshal(body, &value); err != nil {
			return r, nil
		}
		rewritten, err := json.Marshal(keycase.DeepMap(value, fn))
		if err != nil {
			return nil, err
		}
		r.setRaw(rewritten)
		return r, nil
	}
}

func transformQueryKeys(query any, fn func(string) string) any {
	switch q := query.(type) {
	case map[string]string:
		out := make(map[string]string, len(q))
		for key, value := range q {
			out[fn(key)] = value
		}
		return out
	case [][2]string:
		out := make([][2]string, len(q))
		for i, pair := range q {
			out[i] = [2]string{fn(pair[0]), pair[1]}
		}
		return out
	case url.Values:
		out := make(url.Values, len(q))
		for key, values := range q {
			out[fn(key)] = values
		}
		return out
	default:
		return query
	}
}
