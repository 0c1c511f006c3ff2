// Package extract pulls constrained JSON payloads out of free-form model
// output. Generation runs in JSON mode, but the model occasionally wraps the
// object in prose or markdown fences, so extraction is defensive: invalid
// content degrades to a configured fallback rather than an error.
package extract

import (
	"encoding/json"
	"strings"
)

// Schema describes the payload expected from the model: a single named field
// holding an array of strings, with the length bounds the model was asked
// for. An array outside the bounds is treated as malformed. Fallback is
// returned whenever extraction fails or yields an empty array.
type Schema struct {
	Field    string
	MinItems int
	MaxItems int
	Fallback []string
}

// StringArray extracts the schema's string array from raw model output.
// It never fails: malformed, missing, or empty results yield
// schema.Fallback unchanged, reported by the second return.
func StringArray(raw string, schema Schema) ([]string, bool) {
	obj := parseObject(raw)
	if obj == nil {
		return schema.Fallback, false
	}

	field, ok := obj[schema.Field]
	if !ok {
		return schema.Fallback, false
	}
	var items []string
	if err := json.Unmarshal(field, &items); err != nil {
		return schema.Fallback, false
	}
	if len(items) == 0 {
		return schema.Fallback, false
	}
	if len(items) < schema.MinItems || len(items) > schema.MaxItems {
		return schema.Fallback, false
	}
	return items, true
}

// parseObject runs an ordered chain of parse attempts: first the span from
// the first '{' through the last '}' (the usual shape when the model pads
// the object with preamble or a closing remark), then the whole text.
// Returns nil if no attempt yields a JSON object.
func parseObject(raw string) map[string]json.RawMessage {
	attempts := make([][]byte, 0, 2)

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end != -1 && end > start {
		attempts = append(attempts, []byte(raw[start:end+1]))
	}
	attempts = append(attempts, []byte(raw))

	for _, data := range attempts {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err == nil {
			return obj
		}
	}
	return nil
}
