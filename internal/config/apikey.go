package config

import (
	"os"

	"github.com/dshills/diffreview/internal/providers"
)

// APIKeyEnv lists the environment variables checked for a provider's key,
// in lookup order.
func APIKeyEnv(p providers.Provider) []string {
	switch p {
	case providers.Anthropic:
		return []string{"ANTHROPIC_API_KEY"}
	case providers.OpenAI:
		return []string{"OPENAI_API_KEY"}
	case providers.Gemini:
		return []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	case providers.Ollama:
		return []string{"OLLAMA_API_KEY"}
	default:
		return nil
	}
}

// LookupAPIKey reads the provider's key from the environment at call time.
// Returns "" when none is set.
func LookupAPIKey(p providers.Provider) string {
	for _, name := range APIKeyEnv(p) {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
