package logscrub

import (
	"fmt"

	"github.com/logscrub/logscrub/core"
)

// Version of the logscrub library and tools
const Version = "0.1.0"

// Transform walks one decoded value under the given policy and returns
// the rebuilt value together with the value counts
func Transform(v any, policy *core.Policy) (any, core.Stats) {
	var stats core.Stats
	walker := core.NewWalker(policy, &stats)
	return walker.Walk(v), stats
}

// TransformBytes decodes one JSON document, transforms it under the
// policy and re-encodes it compactly
func TransformBytes(data []byte, policy *core.Policy) ([]byte, core.Stats, error) {
	if policy.Mode == core.ModeExtract {
		return nil, core.Stats{}, fmt.Errorf("extract mode does not apply to single documents")
	}

	value, err := core.DecodeValue(data)
	if err != nil {
		return nil, core.Stats{}, fmt.Errorf("failed to parse document: %w", err)
	}

	out, stats := Transform(value, policy)
	encoded, err := core.EncodeValue(out)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to encode document: %w", err)
	}
	return encoded, stats, nil
}

// TransformString is TransformBytes for string input and output
func TransformString(input string, policy *core.Policy) (string, core.Stats, error) {
	out, stats, err := TransformBytes([]byte(input), policy)
	if err != nil {
		return "", stats, err
	}
	return string(out), stats, nil
}

// ScrubString anonymizes one JSON document with the stock scrub policy
func ScrubString(input string) (string, core.Stats, error) {
	return TransformString(input, core.DefaultPolicy())
}

// StructureString replaces every scalar of one JSON document with its
// type placeholder using the stock policy
func StructureString(input string) (string, core.Stats, error) {
	policy := core.DefaultPolicy()
	policy.Mode = core.ModeStructure
	return TransformString(input, policy)
}
