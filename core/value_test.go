package core

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

// TestDecodeValuePreservesKeyOrder verifies that object keys come back
// in document order, not sorted
func TestDecodeValuePreservesKeyOrder(t *testing.T) {
	input := `{"zebra":1,"apple":2,"mango":3}`

	v, err := DecodeValue([]byte(input))
	assert.NoError(t, err)

	doc, ok := v.(Document)
	assert.True(t, ok)
	assert.Len(t, doc, 3)
	assert.Equal(t, "zebra", doc[0].Name)
	assert.Equal(t, "apple", doc[1].Name)
	assert.Equal(t, "mango", doc[2].Name)

	out, err := EncodeValue(v)
	assert.NoError(t, err)
	assert.Equal(t, input, string(out))
}

// TestDecodeValuePreservesNumberText verifies that numbers survive a
// round trip without reformatting
func TestDecodeValuePreservesNumberText(t *testing.T) {
	input := `{"count":42,"ratio":0.10,"sci":1e3,"big":9007199254740993}`

	v, err := DecodeValue([]byte(input))
	assert.NoError(t, err)

	doc := v.(Document)
	ratio, ok := doc.Get("ratio")
	assert.True(t, ok)
	assert.Equal(t, json.Number("0.10"), ratio)

	out, err := EncodeValue(v)
	assert.NoError(t, err)
	assert.Equal(t, input, string(out))
}

// TestDecodeValueDuplicateKeys verifies that duplicate keys are kept
// in order instead of collapsed
func TestDecodeValueDuplicateKeys(t *testing.T) {
	input := `{"level":"info","level":"warn"}`

	v, err := DecodeValue([]byte(input))
	assert.NoError(t, err)

	doc := v.(Document)
	assert.Len(t, doc, 2)
	assert.Equal(t, "info", doc[0].Value)
	assert.Equal(t, "warn", doc[1].Value)

	out, err := EncodeValue(v)
	assert.NoError(t, err)
	assert.Equal(t, input, string(out))
}

// TestDecodeValueScalarsAndNesting covers the remaining value kinds in
// one nested document
func TestDecodeValueScalarsAndNesting(t *testing.T) {
	input := `{"active":true,"parent":null,"tags":["a","b"],"meta":{"empty":{},"none":[]}}`

	v, err := DecodeValue([]byte(input))
	assert.NoError(t, err)

	doc := v.(Document)
	active, _ := doc.Get("active")
	assert.Equal(t, true, active)

	parent, ok := doc.Get("parent")
	assert.True(t, ok)
	assert.Nil(t, parent)

	tags, _ := doc.Get("tags")
	assert.Equal(t, Array{"a", "b"}, tags)

	meta, _ := doc.Get("meta")
	inner := meta.(Document)
	empty, _ := inner.Get("empty")
	assert.Equal(t, Document{}, empty)
	none, _ := inner.Get("none")
	assert.Equal(t, Array{}, none)

	out, err := EncodeValue(v)
	assert.NoError(t, err)
	assert.Equal(t, input, string(out))
}

// TestDecodeValueRejectsTrailingContent verifies that content after the
// first document is an error, not silently ignored
func TestDecodeValueRejectsTrailingContent(t *testing.T) {
	_, err := DecodeValue([]byte(`{"a":1} {"b":2}`))
	assert.Error(t, err)

	_, err = DecodeValue([]byte(`{"a":1}garbage`))
	assert.Error(t, err)
}

// TestDecodeValueErrors covers malformed and empty input
func TestDecodeValueErrors(t *testing.T) {
	_, err := DecodeValue([]byte(``))
	assert.Error(t, err)

	_, err = DecodeValue([]byte(`{"a":`))
	assert.Error(t, err)

	_, err = DecodeValue([]byte(`{broken}`))
	assert.Error(t, err)
}

// TestDocumentGet verifies first-match lookup and the miss case
func TestDocumentGet(t *testing.T) {
	doc := Document{
		{Name: "a", Value: "one"},
		{Name: "a", Value: "two"},
	}

	v, ok := doc.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "one", v)

	_, ok = doc.Get("missing")
	assert.False(t, ok)
}

// TestDocumentUnmarshalJSON verifies that a Document can be decoded
// directly from bytes
func TestDocumentUnmarshalJSON(t *testing.T) {
	var doc Document
	err := json.Unmarshal([]byte(`{"b":1,"a":2}`), &doc)
	assert.NoError(t, err)
	assert.Equal(t, "b", doc[0].Name)
	assert.Equal(t, "a", doc[1].Name)

	err = json.Unmarshal([]byte(`[1,2]`), &doc)
	assert.Error(t, err)
}

// TestKindOf verifies the kind mapping for every supported value type
func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNull, KindOf(nil))
	assert.Equal(t, KindBoolean, KindOf(true))
	assert.Equal(t, KindNumber, KindOf(json.Number("1")))
	assert.Equal(t, KindString, KindOf("s"))
	assert.Equal(t, KindArray, KindOf(Array{}))
	assert.Equal(t, KindObject, KindOf(Document{}))
	assert.Equal(t, KindInvalid, KindOf(struct{}{}))
}
