package jsondoc

import (
	"bytes"
	"encoding/json"
)

// MarshalIndent serializes v with the given per-level indent and a trailing
// newline. Empty objects and arrays are written as {} and [], and HTML
// characters are not escaped, so "a && b" stays readable in npm scripts.
func MarshalIndent(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(Clone(v)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
