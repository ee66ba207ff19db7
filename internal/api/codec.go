package api

import "github.com/iancoleman/strcase"

// The backend speaks snake_case; documents shown to the user (describe and
// edit views) use camelCase keys. The conversion is applied once, at the
// transport edge, and is reversible: Decode(Encode(x)) == x for any document
// whose keys are well-formed camelCase.

// Decode converts a wire document's keys from snake_case to camelCase,
// recursing into nested objects and arrays. Values are left untouched.
func Decode(doc map[string]any) map[string]any {
	return mapKeys(doc, strcase.ToLowerCamel)
}

// Encode converts a document's keys from camelCase back to snake_case for
// the wire.
func Encode(doc map[string]any) map[string]any {
	return mapKeys(doc, strcase.ToSnake)
}

func mapKeys(doc map[string]any, fn func(string) string) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[fn(k)] = mapValue(v, fn)
	}
	return out
}

func mapValue(v any, fn func(string) string) any {
	switch t := v.(type) {
	case map[string]any:
		return mapKeys(t, fn)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = mapValue(e, fn)
		}
		return out
	default:
		return v
	}
}
