package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Mode selects how records are processed
type Mode string

const (
	// ModeExtract pulls embedded serialized JSON out of wrapper records
	ModeExtract Mode = "extract"

	// ModeScrub anonymizes string values while preserving document shape
	ModeScrub Mode = "scrub"

	// ModeStructure replaces every scalar with a type placeholder
	ModeStructure Mode = "structure"
)

// ParseMode converts a CLI argument into a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeExtract, ModeScrub, ModeStructure:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected extract, scrub or structure)", s)
	}
}

// DefaultRawField is the wrapper field holding the embedded document
const DefaultRawField = "@rawstring"

// DefaultDigestLength is how many hex characters an ID digest keeps
const DefaultDigestLength = 8

// PolicyMetadata describes a saved policy file
type PolicyMetadata struct {
	// Version of the policy
	Version string `yaml:"version"`

	// When the policy was created
	CreatedAt time.Time `yaml:"created_at,omitempty"`

	// Description of the policy
	Description string `yaml:"description,omitempty"`

	// Hash of the policy content for integrity verification
	Hash string `yaml:"hash,omitempty"`
}

// Replacements holds the placeholder values substituted for recognized
// sensitive shapes during scrubbing
type Replacements struct {
	// Email replaces email-shaped values
	Email string `yaml:"email"`

	// URL replaces http/https URLs
	URL string `yaml:"url"`

	// IP replaces IPv4 addresses
	IP string `yaml:"ip"`

	// Phone replaces US phone numbers
	Phone string `yaml:"phone"`

	// Filler is the single character repeated to the original length
	// for generic text
	Filler string `yaml:"filler"`
}

// ForCategory returns the placeholder for a matched category
func (r Replacements) ForCategory(c Category) string {
	switch c {
	case CategoryEmail:
		return r.Email
	case CategoryURL:
		return r.URL
	case CategoryIPv4:
		return r.IP
	case CategoryPhone:
		return r.Phone
	default:
		return ""
	}
}

// Policy is the immutable per-run configuration for record processing
type Policy struct {
	// Metadata about the policy
	Metadata PolicyMetadata `yaml:"metadata,omitempty"`

	// Mode selects the transformation
	Mode Mode `yaml:"mode"`

	// PreserveIDs replaces ID-like fields with a stable digest instead
	// of full anonymization (scrub mode only)
	PreserveIDs bool `yaml:"preserve_ids"`

	// RawstringLines treats each input line as a JSON string whose
	// content is itself parsed as JSON (scrub/structure modes)
	RawstringLines bool `yaml:"rawstring_lines"`

	// RawField is the wrapper field holding embedded JSON in extract mode
	RawField string `yaml:"raw_field"`

	// DigestLength is the number of hex characters kept from ID digests
	DigestLength int `yaml:"digest_length"`

	// Replacements are the category placeholder strings
	Replacements Replacements `yaml:"replacements"`
}

// DefaultPolicy returns the stock scrub policy
func DefaultPolicy() *Policy {
	return &Policy{
		Metadata: PolicyMetadata{
			Version:     "1.0",
			CreatedAt:   time.Now(),
			Description: "Default scrub policy",
		},
		Mode:         ModeScrub,
		RawField:     DefaultRawField,
		DigestLength: DefaultDigestLength,
		Replacements: Replacements{
			Email:  "user@example.com",
			URL:    "https://example.com",
			IP:     "192.168.1.1",
			Phone:  "555-000-0000",
			Filler: "X",
		},
	}
}

// LoadPolicy reads a YAML policy file, fills omitted settings with
// defaults and validates the result
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	var policy Policy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("failed to parse policy: %w", err)
	}

	applyPolicyDefaults(&policy)

	if err := validatePolicy(&policy); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}

	// Record the content hash for integrity checking
	policy.Metadata.Hash = calculatePolicyHash(data)

	return &policy, nil
}

// applyPolicyDefaults fills zero-valued settings from the stock policy
func applyPolicyDefaults(policy *Policy) {
	def := DefaultPolicy()

	if policy.Mode == "" {
		policy.Mode = def.Mode
	}
	if policy.RawField == "" {
		policy.RawField = def.RawField
	}
	if policy.DigestLength == 0 {
		policy.DigestLength = def.DigestLength
	}
	if policy.Replacements.Email == "" {
		policy.Replacements.Email = def.Replacements.Email
	}
	if policy.Replacements.URL == "" {
		policy.Replacements.URL = def.Replacements.URL
	}
	if policy.Replacements.IP == "" {
		policy.Replacements.IP = def.Replacements.IP
	}
	if policy.Replacements.Phone == "" {
		policy.Replacements.Phone = def.Replacements.Phone
	}
	if policy.Replacements.Filler == "" {
		policy.Replacements.Filler = def.Replacements.Filler
	}
}

// validatePolicy checks that a policy is usable
func validatePolicy(policy *Policy) error {
	if _, err := ParseMode(string(policy.Mode)); err != nil {
		return err
	}

	if policy.RawField == "" {
		return fmt.Errorf("raw_field must not be empty")
	}

	if policy.DigestLength < 1 || policy.DigestLength > 64 {
		return fmt.Errorf("digest_length %d out of range 1-64", policy.DigestLength)
	}

	if utf8.RuneCountInString(policy.Replacements.Filler) != 1 {
		return fmt.Errorf("filler must be exactly one character, got %q", policy.Replacements.Filler)
	}

	for category, value := range map[string]string{
		"email": policy.Replacements.Email,
		"url":   policy.Replacements.URL,
		"ip":    policy.Replacements.IP,
		"phone": policy.Replacements.Phone,
	} {
		if value == "" {
			return fmt.Errorf("replacement for %s must not be empty", category)
		}
	}

	return nil
}

// calculatePolicyHash generates a hash of the policy content for
// integrity checking
func calculatePolicyHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
