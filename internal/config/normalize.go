package config

import (
	"fmt"
)

// normalizeValue converts decoder output into the canonical shapes used by
// Config: map[string]any for sections and []any for sequences. It always
// returns fresh containers so callers never alias decoder state.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalizeValue(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	case []string:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}

// mergeInto overlays src onto dst. Nested sections merge recursively; any
// other value in src replaces the one in dst.
func mergeInto(dst, src map[string]any) {
	for key, value := range src {
		incoming, isMap := value.(map[string]any)
		existing, hasMap := dst[key].(map[string]any)
		if isMap && hasMap {
			mergeInto(existing, incoming)
			continue
		}
		dst[key] = normalizeValue(value)
	}
}

func cloneMap(values map[string]any) map[string]any {
	cloned, _ := normalizeValue(values).(map[string]any)
	return cloned
}
