package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PolicyBuilder provides a fluent interface for creating policies
type PolicyBuilder struct {
	policy *Policy
}

// NewPolicyBuilder creates a builder seeded with the stock policy
func NewPolicyBuilder() *PolicyBuilder {
	return &PolicyBuilder{policy: DefaultPolicy()}
}

// WithMetadata sets the policy metadata
func (b *PolicyBuilder) WithMetadata(version, description string) *PolicyBuilder {
	b.policy.Metadata.Version = version
	b.policy.Metadata.Description = description
	return b
}

// WithMode sets the processing mode
func (b *PolicyBuilder) WithMode(mode Mode) *PolicyBuilder {
	b.policy.Mode = mode
	return b
}

// WithPreserveIDs toggles digest preservation of ID-like fields
func (b *PolicyBuilder) WithPreserveIDs(preserve bool) *PolicyBuilder {
	b.policy.PreserveIDs = preserve
	return b
}

// WithRawstringLines toggles embedded-JSON line parsing
func (b *PolicyBuilder) WithRawstringLines(enabled bool) *PolicyBuilder {
	b.policy.RawstringLines = enabled
	return b
}

// WithRawField sets the wrapper field used by extract mode
func (b *PolicyBuilder) WithRawField(field string) *PolicyBuilder {
	b.policy.RawField = field
	return b
}

// WithDigestLength sets how many hex characters ID digests keep
func (b *PolicyBuilder) WithDigestLength(length int) *PolicyBuilder {
	b.policy.DigestLength = length
	return b
}

// WithReplacement overrides the placeholder for one category
func (b *PolicyBuilder) WithReplacement(category Category, value string) *PolicyBuilder {
	switch category {
	case CategoryEmail:
		b.policy.Replacements.Email = value
	case CategoryURL:
		b.policy.Replacements.URL = value
	case CategoryIPv4:
		b.policy.Replacements.IP = value
	case CategoryPhone:
		b.policy.Replacements.Phone = value
	}
	return b
}

// WithFiller sets the character repeated for generic scrubbed text
func (b *PolicyBuilder) WithFiller(filler string) *PolicyBuilder {
	b.policy.Replacements.Filler = filler
	return b
}

// Build validates and returns the final policy
func (b *PolicyBuilder) Build() (*Policy, error) {
	if err := validatePolicy(b.policy); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}
	return b.policy, nil
}

// SavePolicy saves a policy to a YAML file
func SavePolicy(policy *Policy, path string) error {
	data, err := yaml.Marshal(policy)
	if err != nil {
		return fmt.Errorf("failed to marshal policy: %w", err)
	}

	// Calculate and embed the hash for integrity checking
	policy.Metadata.Hash = calculatePolicyHash(data)

	// Re-marshal with the updated hash
	data, err = yaml.Marshal(policy)
	if err != nil {
		return fmt.Errorf("failed to re-marshal policy with hash: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write policy file: %w", err)
	}

	return nil
}
