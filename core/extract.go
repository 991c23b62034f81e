package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/buger/jsonparser"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// ErrNotArray reports that extract-mode input is not a JSON array
var ErrNotArray = errors.New("top-level document is not a JSON array")

// Extractor pulls embedded serialized-JSON payloads out of wrapper
// records, one per array element
type Extractor struct {
	// Field is the wrapper field expected to hold serialized JSON
	Field string

	log zerolog.Logger
}

// NewExtractor creates an extractor for the default wrapper field
func NewExtractor() *Extractor {
	return &Extractor{
		Field: DefaultRawField,
		log:   zerolog.Nop(),
	}
}

// WithLogger attaches a logger for per-record skip diagnostics
func (e *Extractor) WithLogger(log zerolog.Logger) *Extractor {
	e.log = log
	return e
}

// Extract parses a batch (a JSON array of wrapper objects) and returns
// the embedded documents in input order. Records with a missing,
// non-string, blank or unparseable payload field are skipped and
// counted; they never abort the batch. Only a malformed top-level
// document is an error.
func (e *Extractor) Extract(data []byte) ([]any, Stats, error) {
	var stats Stats

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, stats, fmt.Errorf("failed to parse input: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, stats, ErrNotArray
	}

	var out []any
	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			// A malformed element corrupts the whole array
			return nil, stats, fmt.Errorf("failed to parse record %d: %w", stats.TotalRecords+1, err)
		}
		index := stats.TotalRecords
		stats.TotalRecords++

		embedded, err := jsonparser.GetString(raw, e.Field)
		if err != nil {
			stats.InvalidRecords++
			e.log.Warn().Int("record", index).Str("field", e.Field).
				Msg("skipping record without a usable payload field")
			continue
		}
		if strings.TrimSpace(embedded) == "" {
			stats.InvalidRecords++
			e.log.Warn().Int("record", index).Msg("skipping record with blank payload")
			continue
		}

		value, err := DecodeValue([]byte(embedded))
		if err != nil {
			stats.InvalidRecords++
			e.log.Warn().Int("record", index).Err(err).
				Msg("skipping record with unparseable payload")
			continue
		}

		out = append(out, value)
		stats.ValidRecords++
	}

	if _, err := dec.Token(); err != nil {
		return nil, stats, fmt.Errorf("unterminated record array: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, stats, fmt.Errorf("unexpected content after record array")
	}

	return out, stats, nil
}
