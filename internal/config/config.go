package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	ServerAddr     string
	AllowedOrigins []string

	LLMProvider     string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	GeminiAPIKey    string
	Model           string
	MaxOutputTokens int
	Temperature     float32

	DefaultRows    int
	MaxRows        int
	MaxUploadBytes int64

	CompletionTimeout       time.Duration
	CompletionMaxRetries    int
	CompletionRetryInterval time.Duration

	SchemaPolicy string
	LogLevel     string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; variables already set win.
func Load() *Config {
	_ = godotenv.Load()

	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI))
	return &Config{
		ServerAddr:     getEnv("SERVER_ADDR", ":8080"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		LLMProvider:     provider,
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   strings.TrimRight(getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"), "/"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		Model:           getEnv("MODEL", defaultModel(provider)),
		MaxOutputTokens: getEnvInt("MAX_OUTPUT_TOKENS", 2000),
		Temperature:     float32(getEnvFloat("TEMPERATURE", 0.7)),

		DefaultRows:    getEnvInt("DEFAULT_ROWS", 10),
		MaxRows:        getEnvInt("MAX_ROWS", 1000),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),

		CompletionTimeout:       getEnvDuration("COMPLETION_TIMEOUT", 60*time.Second),
		CompletionMaxRetries:    getEnvInt("COMPLETION_MAX_RETRIES", 2),
		CompletionRetryInterval: getEnvDuration("COMPLETION_RETRY_INTERVAL", 500*time.Millisecond),

		SchemaPolicy: strings.ToLower(getEnv("SCHEMA_POLICY", "coerce")),
		LogLevel:     strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", "info"))),
	}
}

func defaultModel(provider string) string {
	if provider == ProviderGemini {
		return "gemini-2.5-flash"
	}
	return "gpt-4o-mini"
}

// Validate checks the settings needed to serve generation requests.
// Provider credentials are checked separately by RequireCredentials so that
// offline commands can run without them.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ServerAddr, validation.Required),
		validation.Field(&c.LLMProvider, validation.Required, validation.In(ProviderOpenAI, ProviderGemini)),
		validation.Field(&c.Model, validation.Required),
		validation.Field(&c.MaxOutputTokens, validation.Required, validation.Min(1)),
		validation.Field(&c.Temperature, validation.Min(float32(0)), validation.Max(float32(2))),
		validation.Field(&c.DefaultRows, validation.Required, validation.Min(1), validation.Max(c.MaxRows)),
		validation.Field(&c.MaxRows, validation.Required, validation.Min(1)),
		validation.Field(&c.MaxUploadBytes, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.CompletionTimeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.CompletionMaxRetries, validation.Min(0)),
		validation.Field(&c.CompletionRetryInterval, validation.Min(time.Duration(0))),
		validation.Field(&c.SchemaPolicy, validation.In("off", "strict", "coerce")),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "warning", "error")),
	)
}

// RequireCredentials fails when the selected provider has no API key.
func (c *Config) RequireCredentials() error {
	switch c.LLMProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for provider %q", c.LLMProvider)
		}
	default:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for provider %q", c.LLMProvider)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 32); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
