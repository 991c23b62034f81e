package core

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

// TestExtractBatch verifies the happy path: every wrapper record
// yields its embedded payload, in input order
func TestExtractBatch(t *testing.T) {
	batch := `[
		{"_count":"1","@rawstring":"{\"a\":1}"},
		{"_count":"1","@rawstring":"{\"b\":\"two\"}"}
	]`

	values, stats, err := NewExtractor().Extract([]byte(batch))
	assert.NoError(t, err)
	assert.Len(t, values, 2)
	assert.Equal(t, 2, stats.TotalRecords)
	assert.Equal(t, 2, stats.ValidRecords)
	assert.Equal(t, 0, stats.InvalidRecords)

	first := values[0].(Document)
	a, _ := first.Get("a")
	assert.Equal(t, json.Number("1"), a)

	second := values[1].(Document)
	b, _ := second.Get("b")
	assert.Equal(t, "two", b)
}

// TestExtractSkipsBadRecords verifies that a record with an unusable
// payload is skipped and counted without aborting the batch
func TestExtractSkipsBadRecords(t *testing.T) {
	batch := `[
		{"@rawstring":"{\"a\":1}"},
		{"@rawstring":"not json"},
		{"@rawstring":"{\"c\":3}"}
	]`

	values, stats, err := NewExtractor().Extract([]byte(batch))
	assert.NoError(t, err)
	assert.Len(t, values, 2)
	assert.Equal(t, 3, stats.TotalRecords)
	assert.Equal(t, 2, stats.ValidRecords)
	assert.Equal(t, 1, stats.InvalidRecords)

	// Survivors keep their relative order
	first := values[0].(Document)
	_, ok := first.Get("a")
	assert.True(t, ok)
	second := values[1].(Document)
	_, ok = second.Get("c")
	assert.True(t, ok)
}

// TestExtractUnusablePayloads covers the skip reasons short of a parse
// failure: missing field, blank payload, non-string payload
func TestExtractUnusablePayloads(t *testing.T) {
	batch := `[
		{"message":"no payload here"},
		{"@rawstring":"   "},
		{"@rawstring":42},
		{"@rawstring":"{\"ok\":true}"}
	]`

	values, stats, err := NewExtractor().Extract([]byte(batch))
	assert.NoError(t, err)
	assert.Len(t, values, 1)
	assert.Equal(t, 4, stats.TotalRecords)
	assert.Equal(t, 1, stats.ValidRecords)
	assert.Equal(t, 3, stats.InvalidRecords)
}

// TestExtractRequiresArray verifies that a non-array top level is
// rejected with ErrNotArray
func TestExtractRequiresArray(t *testing.T) {
	_, _, err := NewExtractor().Extract([]byte(`{"@rawstring":"{}"}`))
	assert.ErrorIs(t, err, ErrNotArray)

	_, _, err = NewExtractor().Extract([]byte(`"just a string"`))
	assert.ErrorIs(t, err, ErrNotArray)

	_, _, err = NewExtractor().Extract([]byte(``))
	assert.Error(t, err)
}

// TestExtractMalformedElementIsFatal verifies that a syntax error
// inside the array aborts the run, since it corrupts everything after
func TestExtractMalformedElementIsFatal(t *testing.T) {
	_, _, err := NewExtractor().Extract([]byte(`[{"@rawstring":"{}"},{"broken":]`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotArray)
}

// TestExtractTrailingContent verifies that bytes after the closing
// bracket are an error
func TestExtractTrailingContent(t *testing.T) {
	_, _, err := NewExtractor().Extract([]byte(`[{"@rawstring":"{\"a\":1}"}] extra`))
	assert.Error(t, err)
}

// TestExtractCustomField verifies extraction from a differently named
// wrapper field
func TestExtractCustomField(t *testing.T) {
	batch := `[{"payload":"{\"a\":1}","@rawstring":"ignored"}]`

	extractor := NewExtractor()
	extractor.Field = "payload"

	values, stats, err := extractor.Extract([]byte(batch))
	assert.NoError(t, err)
	assert.Len(t, values, 1)
	assert.Equal(t, 1, stats.ValidRecords)

	doc := values[0].(Document)
	a, _ := doc.Get("a")
	assert.Equal(t, json.Number("1"), a)
}

// TestExtractEmptyBatch verifies that an empty array is a valid run
// with zero records
func TestExtractEmptyBatch(t *testing.T) {
	values, stats, err := NewExtractor().Extract([]byte(`[]`))
	assert.NoError(t, err)
	assert.Empty(t, values)
	assert.Equal(t, 0, stats.TotalRecords)
}
