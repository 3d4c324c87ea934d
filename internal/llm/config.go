// Package llm provides the text-generation capability used for tailoring and cover letters.
// It hides the provider behind a Client interface with model tiers.
package llm

import "fmt"

// ModelTier selects how capable, and how expensive, a generation call is.
type ModelTier string

const (
	// TierLite rewrites a single CV field.
	TierLite ModelTier = "lite"
	// TierStandard is the fallback for tiers without their own model.
	TierStandard ModelTier = "standard"
	// TierAdvanced writes a whole cover letter.
	TierAdvanced ModelTier = "advanced"
)

// Tiers lists every tier from cheapest to most capable.
func Tiers() []ModelTier {
	return []ModelTier{TierLite, TierStandard, TierAdvanced}
}

// ParseTier returns the tier named s.
func ParseTier(s string) (ModelTier, error) {
	for _, tier := range Tiers() {
		if string(tier) == s {
			return tier, nil
		}
	}
	return "", fmt.Errorf("unknown model tier %q", s)
}

// Provider names a generation backend.
type Provider string

// ProviderGemini is Google Gemini.
const ProviderGemini Provider = "gemini"

// Config holds the generation settings of a client.
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
	// MaxOutputTokens caps the answer per tier; tiers without an entry are uncapped.
	MaxOutputTokens map[ModelTier]int32
	// RequestsPerSecond throttles outgoing calls when positive. Calls wait; they are never retried.
	RequestsPerSecond float64
	Burst             int
}

// DefaultConfig returns the Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		// A rewritten field stays under a few hundred words; a letter under one page.
		MaxOutputTokens: map[ModelTier]int32{
			TierLite:     1024,
			TierStandard: 2048,
			TierAdvanced: 4096,
		},
		Temperature: 0.4,
	}
}

// GetModel returns the model for tier, falling back to the standard and then the lite model.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model := c.Models[t]; model != "" {
			return model
		}
	}
	return ""
}

// OutputLimit returns the token cap for tier, or 0 when it is uncapped.
func (c *Config) OutputLimit(tier ModelTier) int32 {
	return c.MaxOutputTokens[tier]
}

// WithModel returns a copy of c that uses model for tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := *c
	next.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return &next
}
