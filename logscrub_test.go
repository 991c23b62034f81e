package logscrub

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/logscrub/logscrub/core"
)

// TestScrubRecord demonstrates the basic scrub flow on a single record
func TestScrubRecord(t *testing.T) {
	input := `{"email":"bob@corp.example","name":"Bob"}`

	out, stats, err := TransformString(input, core.DefaultPolicy())
	assert.NoError(t, err)
	assert.Equal(t, `{"email":"user@example.com","name":"XXX"}`, out)
	assert.Equal(t, 2, stats.Strings)

	// Since this is a demo, we print the output for better visibility
	fmt.Println("Original: ", input)
	fmt.Println("Scrubbed: ", out)
}

// TestStructureRecord verifies the structure rendering of the same
// record
func TestStructureRecord(t *testing.T) {
	out, _, err := StructureString(`{"email":"bob@corp.example","name":"Bob"}`)
	assert.NoError(t, err)
	assert.Equal(t, `{"email":"[STRING]","name":"[STRING]"}`, out)
}

// TestPreservedIDDigest verifies that preserve-ids yields the same
// fixed-length hex digest on every run
func TestPreservedIDDigest(t *testing.T) {
	policy := core.DefaultPolicy()
	policy.PreserveIDs = true

	first, _, err := TransformString(`{"id":"abc123"}`, policy)
	assert.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\{"id":"[0-9a-f]{8}"\}$`), first)

	second, _, err := TransformString(`{"id":"abc123"}`, policy)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestStructureReapplication verifies that running structure mode over
// its own output changes nothing, since placeholders are strings
func TestStructureReapplication(t *testing.T) {
	policy := core.DefaultPolicy()
	policy.Mode = core.ModeStructure

	once, _, err := TransformString(`{"a":"x","b":7,"c":null,"d":[true]}`, policy)
	assert.NoError(t, err)

	twice, _, err := TransformString(once, policy)
	assert.NoError(t, err)
	assert.Equal(t, `{"a":"[STRING]","b":"[STRING]","c":"[STRING]","d":["[STRING]"]}`, twice)
}

// TestTransformNested verifies scrubbing through nested objects and
// arrays in one call
func TestTransformNested(t *testing.T) {
	input := `{"user":{"email":"ops@corp.example","roles":["admin","batch"]},"source":"10.1.2.3","retries":2}`

	out, stats, err := ScrubString(input)
	assert.NoError(t, err)
	assert.Equal(t,
		`{"user":{"email":"user@example.com","roles":["XXXXX","XXXXX"]},"source":"192.168.1.1","retries":2}`,
		out)
	assert.Equal(t, 4, stats.Strings)
	assert.Equal(t, 1, stats.Numbers)
}

// TestTransformBytesRejectsExtractMode verifies that the single
// document entry point refuses batch-only mode
func TestTransformBytesRejectsExtractMode(t *testing.T) {
	policy := core.DefaultPolicy()
	policy.Mode = core.ModeExtract

	_, _, err := TransformBytes([]byte(`{"a":1}`), policy)
	assert.Error(t, err)
}

// TestTransformBytesRejectsMalformedInput verifies the parse error path
func TestTransformBytesRejectsMalformedInput(t *testing.T) {
	_, _, err := TransformBytes([]byte(`{"a":`), core.DefaultPolicy())
	assert.Error(t, err)
}
