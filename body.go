package makeservice

import (
	"encoding/json"
	"io"
	"net/url"
	"reflect"
	"time"
)

// Kind is the runtime category of a value, used to decide whether a
// request body must be JSON-serialized or is already a valid transport
// payload.
type Kind string

const (
	KindNil     Kind = "nil"
	KindBool    Kind = "bool"
	KindInt     Kind = "int"
	KindUint    Kind = "uint"
	KindFloat   Kind = "float"
	KindString  Kind = "string"
	KindBytes   Kind = "bytes"
	KindSlice   Kind = "slice"
	KindArray   Kind = "array"
	KindMap     Kind = "map"
	KindStruct  Kind = "struct"
	KindTime    Kind = "time"
	KindFunc    Kind = "func"
	KindChan    Kind = "chan"
	KindPointer Kind = "pointer"
	KindReader  Kind = "reader"
	KindValues  Kind = "urlvalues"
	KindURL     Kind = "url"
)

// KindOf classifies a value's runtime category. Interface and concrete
// types that are valid transport payloads ([]byte, io.Reader,
// url.Values) are distinguished from the JSON-like categories before
// falling back to reflection. Pointers classify as the category of
// their element, except nil pointers which classify as KindNil.
func KindOf(v any) Kind {
	switch t := v.(type) {
	case nil:
		return KindNil
	case []byte:
		return KindBytes
	case url.Values:
		return KindValues
	case *url.URL:
		if t == nil {
			return KindNil
		}
		return KindURL
	case time.Time:
		return KindTime
	case io.Reader:
		return KindReader
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return KindNil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindUint
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.String:
		return KindString
	case reflect.Slice:
		return KindSlice
	case reflect.Array:
		return KindArray
	case reflect.Map:
		return KindMap
	case reflect.Struct:
		return KindStruct
	case reflect.Func:
		return KindFunc
	case reflect.Chan:
		return KindChan
	default:
		return KindPointer
	}
}

// EnsureBody decides whether a body value is already a valid transport
// payload or must be JSON-serialized. Nil returns nil, strings pass
// through unchanged, JSON-like categories (bool, numbers, maps, slices,
// arrays, structs) are marshaled to a JSON string, and everything else
// (byte slices, readers, url.Values and other binary payload
// categories) passes through by reference. Misclassifying a binary
// payload as JSON-like would corrupt the request, which is why the
// transport-native categories are checked first in KindOf.
func EnsureBody(body any) (any, error) {
	if body == nil {
		return nil, nil
	}
	if s, ok := body.(string); ok {
		return s, nil
	}

	switch KindOf(body) {
	case KindBool, KindInt, KindUint, KindFloat,
		KindSlice, KindArray, KindMap, KindStruct, KindTime:
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		return string(encoded), nil
	case KindString:
		// Named string types reach here; unwrap them instead of
		// JSON-quoting.
		rv := reflect.ValueOf(body)
		for rv.Kind() == reflect.Pointer {
			rv = rv.Elem()
		}
		return rv.String(), nil
	default:
		return body, nil
	}
}
