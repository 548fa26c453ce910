// Package jsondoc reads, merges and writes JSON documents without losing
// member order.
//
// Configuration files such as package.json and tsconfig.json are edited in
// place, so member order must survive a parse and serialize round trip.
// Values are one of: Object, []any, string, float64, bool or nil.
package jsondoc

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/iancoleman/orderedmap"
)

// Object is a JSON object that remembers member order.
type Object = orderedmap.OrderedMap

// NewObject returns an empty object that does not HTML-escape its strings.
func NewObject() *Object {
	o := orderedmap.New()
	o.SetEscapeHTML(false)
	return o
}

// Parse decodes a single JSON value of any kind. Numbers are decoded as
// float64.
func Parse(data []byte) (any, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	// orderedmap only decodes objects, so the value is wrapped in one.
	wrapped := make([]byte, 0, len(raw)+6)
	wrapped = append(wrapped, `{"v":`...)
	wrapped = append(wrapped, bytes.TrimSpace(raw)...)
	wrapped = append(wrapped, '}')

	root := NewObject()
	if err := json.Unmarshal(wrapped, root); err != nil {
		return nil, err
	}
	v, _ := root.Get("v")
	return Clone(v), nil
}

// ParseObject decodes a document whose top-level value must be an object.
func ParseObject(data []byte) (*Object, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(Object)
	if !ok {
		return nil, errors.New("top-level value is not an object")
	}
	return &obj, nil
}

// Clone deep-copies any document value. Every copied object is set to
// leave HTML characters unescaped.
func Clone(v any) any {
	switch t := v.(type) {
	case Object:
		return cloneObject(&t)
	case *Object:
		if t == nil {
			return nil
		}
		return cloneObject(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	default:
		return t
	}
}

func cloneObject(o *Object) Object {
	out := NewObject()
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		out.Set(k, Clone(v))
	}
	return *out
}

func asObject(v any) (*Object, bool) {
	switch t := v.(type) {
	case Object:
		return &t, true
	case *Object:
		return t, t != nil
	}
	return nil, false
}
