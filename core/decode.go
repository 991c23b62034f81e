package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
)

// DecodeValue parses exactly one JSON document into the ordered value
// model. Object field order and the exact textual form of numbers are
// preserved. Content after the first document is an error.
func DecodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeNext(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected content after JSON document")
	}
	return v, nil
}

// decodeNext consumes one complete value from the token stream
func decodeNext(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("unexpected end of JSON input")
		}
		return nil, fmt.Errorf("failed to read JSON token: %w", err)
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case string:
		return t, nil
	case json.Number:
		return t, nil
	case float64:
		// Unreachable while UseNumber is set on the decoder
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64)), nil
	case bool:
		return t, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected JSON token %v", tok)
	}
}

// decodeObject consumes fields until the closing brace, keeping order
func decodeObject(dec *json.Decoder) (Document, error) {
	doc := Document{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read object key: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", tok)
		}

		value, err := decodeNext(dec)
		if err != nil {
			return nil, err
		}
		doc = append(doc, Field{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("unterminated object: %w", err)
	}
	return doc, nil
}

// decodeArray consumes elements until the closing bracket
func decodeArray(dec *json.Decoder) (Array, error) {
	arr := Array{}
	for dec.More() {
		value, err := decodeNext(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("unterminated array: %w", err)
	}
	return arr, nil
}
