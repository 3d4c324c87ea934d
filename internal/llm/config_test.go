package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{},
	}

	// Empty config should return empty string
	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	newConfig := config.WithModel(TierAdvanced, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))

	// New config should have custom model
	assert.Equal(t, "custom-model", newConfig.GetModel(TierAdvanced))

	// Other tiers should be copied
	assert.Equal(t, "gemini-2.5-flash-lite", newConfig.GetModel(TierLite))
}

func TestModelTierConstants(t *testing.T) {
	assert.Equal(t, ModelTier("lite"), TierLite)
	assert.Equal(t, ModelTier("standard"), TierStandard)
	assert.Equal(t, ModelTier("advanced"), TierAdvanced)
}

func TestGetModel_SkipsEmptyNames(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{TierAdvanced: "", TierStandard: "std"}}
	assert.Equal(t, "std", config.GetModel(TierAdvanced))
}

func TestParseTier(t *testing.T) {
	for _, tier := range Tiers() {
		got, err := ParseTier(string(tier))
		require.NoError(t, err)
		assert.Equal(t, tier, got)
	}

	_, err := ParseTier("huge")
	assert.EqualError(t, err, `unknown model tier "huge"`)
}

func TestOutputLimit(t *testing.T) {
	config := DefaultConfig()
	assert.Less(t, config.OutputLimit(TierLite), config.OutputLimit(TierAdvanced))
	assert.Equal(t, int32(0), (&Config{}).OutputLimit(TierLite))
	assert.Equal(t, config.OutputLimit(TierAdvanced), config.WithModel(TierAdvanced, "x").OutputLimit(TierAdvanced))
}

func TestProviderConstants(t *testing.T) {
	assert.Equal(t, Provider("gemini"), ProviderGemini)
}

func TestWithModel_KeepsSettings(t *testing.T) {
	config := DefaultConfig()
	config.RequestsPerSecond = 2
	config.Burst = 3

	newConfig := config.WithModel(TierLite, "tiny")
	assert.Equal(t, config.Temperature, newConfig.Temperature)
	assert.Equal(t, 2.0, newConfig.RequestsPerSecond)
	assert.Equal(t, 3, newConfig.Burst)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
}
