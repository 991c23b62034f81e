package core

import (
	"fmt"
	"strings"
)

// Stats aggregates record and value counts for a single run. It is
// owned by one pipeline invocation and never shared across goroutines.
type Stats struct {
	// TotalRecords is every record seen, valid or not
	TotalRecords int `json:"total_records"`

	// ValidRecords were processed and written
	ValidRecords int `json:"valid_records"`

	// InvalidRecords were skipped and counted
	InvalidRecords int `json:"invalid_records"`

	// Strings counts string scalars visited
	Strings int `json:"strings"`

	// Numbers counts number scalars visited
	Numbers int `json:"numbers"`

	// Booleans counts boolean scalars visited
	Booleans int `json:"booleans"`

	// Nulls counts null scalars visited
	Nulls int `json:"nulls"`

	// EmptyArrays counts arrays with no elements
	EmptyArrays int `json:"empty_arrays"`

	// EmptyObjects counts objects with no fields
	EmptyObjects int `json:"empty_objects"`
}

// CountValue records one visited scalar or terminal container
func (s *Stats) CountValue(v any) {
	switch KindOf(v) {
	case KindString:
		s.Strings++
	case KindNumber:
		s.Numbers++
	case KindBoolean:
		s.Booleans++
	case KindNull:
		s.Nulls++
	case KindArray:
		s.EmptyArrays++
	case KindObject:
		s.EmptyObjects++
	}
}

// Merge folds another accumulator into this one
func (s *Stats) Merge(other Stats) {
	s.TotalRecords += other.TotalRecords
	s.ValidRecords += other.ValidRecords
	s.InvalidRecords += other.InvalidRecords
	s.Strings += other.Strings
	s.Numbers += other.Numbers
	s.Booleans += other.Booleans
	s.Nulls += other.Nulls
	s.EmptyArrays += other.EmptyArrays
	s.EmptyObjects += other.EmptyObjects
}

// Summary renders the human-readable report printed after a run
func (s Stats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Processed %d records: %d valid, %d invalid\n",
		s.TotalRecords, s.ValidRecords, s.InvalidRecords)
	fmt.Fprintf(&b, "Values: %d strings, %d numbers, %d booleans, %d nulls, %d empty arrays, %d empty objects",
		s.Strings, s.Numbers, s.Booleans, s.Nulls, s.EmptyArrays, s.EmptyObjects)
	return b.String()
}
