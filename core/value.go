package core

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Kind identifies the JSON kind of a decoded value
type Kind int

const (
	// KindInvalid marks a value outside the JSON model
	KindInvalid Kind = iota

	// KindNull represents JSON null
	KindNull

	// KindBoolean represents true/false
	KindBoolean

	// KindNumber represents any JSON number
	KindNumber

	// KindString represents a JSON string
	KindString

	// KindArray represents a JSON array
	KindArray

	// KindObject represents a JSON object
	KindObject
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Field is a single name/value pair inside a Document
type Field struct {
	// Name is the object key exactly as it appeared in the input
	Name string

	// Value is the decoded field value: nil, bool, json.Number,
	// string, Array or Document
	Value any
}

// Document is a JSON object whose fields keep their original insertion
// order. Duplicate names are kept as distinct fields in encounter order.
type Document []Field

// Array is a JSON array
type Array []any

// Get returns the value of the first field with the given name
func (d Document) Get(name string) (any, bool) {
	for _, f := range d {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON serializes the document compactly with fields in stored order
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to encode field name %q: %w", f.Name, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode field %q: %w", f.Name, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses an object into the document, preserving field order
func (d *Document) UnmarshalJSON(data []byte) error {
	v, err := DecodeValue(data)
	if err != nil {
		return err
	}
	doc, ok := v.(Document)
	if !ok {
		return fmt.Errorf("expected a JSON object, got %s", KindOf(v))
	}
	*d = doc
	return nil
}

// KindOf classifies a decoded value. Values produced by DecodeValue are
// always one of the six JSON kinds; anything else reports KindInvalid.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case json.Number:
		return KindNumber
	case string:
		return KindString
	case Array:
		return KindArray
	case Document:
		return KindObject
	default:
		return KindInvalid
	}
}

// EncodeValue serializes a decoded value back to compact JSON
func EncodeValue(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	return data, nil
}
