package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

const (
	// PlaceholderString replaces strings in structure mode
	PlaceholderString = "[STRING]"

	// PlaceholderNumber replaces numbers in structure mode
	PlaceholderNumber = "[NUMBER]"

	// PlaceholderBoolean replaces booleans in structure mode
	PlaceholderBoolean = "[BOOLEAN]"

	// PlaceholderNull replaces nulls in structure mode
	PlaceholderNull = "[NULL]"
)

// Anonymizer transforms scalar values according to a policy. It is
// pure: counters belong to the Walker, not here.
type Anonymizer struct {
	policy *Policy
}

// NewAnonymizer creates an anonymizer bound to a policy
func NewAnonymizer(policy *Policy) *Anonymizer {
	return &Anonymizer{policy: policy}
}

// Anonymize transforms one scalar given its field-name context. The
// name is empty for top-level values; array elements inherit the name
// of the field holding the array.
func (a *Anonymizer) Anonymize(name string, v any) any {
	switch a.policy.Mode {
	case ModeStructure:
		return structurePlaceholder(v)
	case ModeScrub:
		s, ok := v.(string)
		if !ok {
			// Numbers, booleans and nulls pass through untouched
			return v
		}
		return a.scrubString(name, s)
	default:
		return v
	}
}

// scrubString applies the scrub rules in order: keep blank strings,
// digest ID fields, substitute category placeholders, then fall back
// to same-length filler text
func (a *Anonymizer) scrubString(name, s string) string {
	if strings.TrimSpace(s) == "" {
		return s
	}

	if a.policy.PreserveIDs && IsIDField(name) {
		return a.Digest(s)
	}

	if category := Classify(s); category != CategoryNone {
		return a.policy.Replacements.ForCategory(category)
	}

	return strings.Repeat(a.policy.Replacements.Filler, utf8.RuneCountInString(s))
}

// Digest returns the stable hex digest substituted for preserved ID
// values. It is deterministic and unsalted so the same value maps to
// the same digest across runs, keeping anonymized exports joinable.
func (a *Anonymizer) Digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	digest := hex.EncodeToString(sum[:])
	if a.policy.DigestLength < len(digest) {
		digest = digest[:a.policy.DigestLength]
	}
	return digest
}

// structurePlaceholder maps a scalar to its type placeholder.
// Containers never reach here; the Walker handles them.
func structurePlaceholder(v any) string {
	switch KindOf(v) {
	case KindString:
		return PlaceholderString
	case KindNumber:
		return PlaceholderNumber
	case KindBoolean:
		return PlaceholderBoolean
	default:
		return PlaceholderNull
	}
}
