// Package llm provides model configuration and a client abstraction over the
// Gemini API.
package llm

import (
	"os"
	"strconv"
	"strings"
)

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: profile extraction, classification
	TierLite ModelTier = "lite"
	// TierStandard is for structured output: job extraction, compatibility analysis
	TierStandard ModelTier = "standard"
	// TierAdvanced is for rewriting the résumé
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// DefaultTemperature keeps output stable across calls.
const DefaultTemperature float32 = 0.1

// Environment variables that override the model of a tier.
const (
	EnvModelLite     = "GEMINI_MODEL_LITE"
	EnvModelStandard = "GEMINI_MODEL_STANDARD"
	EnvModelAdvanced = "GEMINI_MODEL_ADVANCED"
	EnvTemperature   = "GEMINI_TEMPERATURE"
)

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
	}
}

// ConfigFromEnv returns DefaultConfig with per-tier model and temperature
// overrides read from the environment.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	overrides := map[ModelTier]string{
		TierLite:     EnvModelLite,
		TierStandard: EnvModelStandard,
		TierAdvanced: EnvModelAdvanced,
	}
	for tier, key := range overrides {
		if model := strings.TrimSpace(os.Getenv(key)); model != "" {
			cfg.Models[tier] = model
		}
	}
	if v := os.Getenv(EnvTemperature); v != "" {
		if t, err := strconv.ParseFloat(v, 32); err == nil && t >= 0 && t <= 2 {
			cfg.Temperature = float32(t)
		}
	}
	return cfg
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
