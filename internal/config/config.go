package config

import (
	"os"
)

// Provider selection values for AIVA_PROVIDER.
const (
	ProviderLongCat = "longcat"
	ProviderGemini  = "gemini"
)

// Config holds the gateway configuration read from environment variables.
type Config struct {
	Port     string
	RedisURL string
	Provider string

	LongCatAPIURL string
	LongCatAPIKey string
	LongCatModel  string

	GeminiAPIURL string
	GeminiAPIKey string
	GeminiModel  string
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Port:     envOrDefault("PORT", "5000"),
		RedisURL: envOrDefault("REDIS_URL", "redis://localhost:6379"),
		Provider: envOrDefault("AIVA_PROVIDER", ProviderLongCat),

		LongCatAPIURL: os.Getenv("LONGCAT_API_URL"),
		LongCatAPIKey: os.Getenv("LONGCAT_API_KEY"),
		LongCatModel:  os.Getenv("LONGCAT_MODEL"),

		GeminiAPIURL: os.Getenv("GEMINI_API_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
	}
}

// MissingKeys names the credentials required by the selected provider that
// are absent from the environment. The gateway still starts without them;
// requests then fail with fallback copy instead of crashing the process.
func (c Config) MissingKeys() []string {
	var missing []string
	switch c.Provider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	default:
		if c.LongCatAPIKey == "" {
			missing = append(missing, "LONGCAT_API_KEY")
		}
	}
	return missing
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
