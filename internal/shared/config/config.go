package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"grammar-backend/internal/shared/telemetry"
)

const (
	defaultLanguageToolURL = "https://api.languagetool.org/v2/check"
	defaultOpenAIBaseURL   = "https://api.openai.com/v1"
	defaultLLMModel        = "gpt-4"
	defaultOpenAITimeout   = 120 * time.Second
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	DatabaseURL     string
	Env             string
	LanguageToolURL string
	// OpenAIAPIKey empty disables the generative checker.
	OpenAIAPIKey  string
	LLMModel      string
	OpenAIBaseURL string
	OpenAITimeout time.Duration
}

// GenerativeEnabled reports whether a generative provider credential is set.
func (c Config) GenerativeEnabled() bool {
	return strings.TrimSpace(c.OpenAIAPIKey) != ""
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		telemetry.Warn("config.missing", map[string]any{"key": "DATABASE_URL", "env": env})
	}
	if env == "production" && strings.TrimSpace(os.Getenv("JWT_SECRET")) == "" {
		telemetry.Warn("config.missing", map[string]any{"key": "JWT_SECRET", "env": env})
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		DatabaseURL:     dbURL,
		Env:             env,
		LanguageToolURL: getEnv("LANGUAGETOOL_API_URL", defaultLanguageToolURL),
		OpenAIAPIKey:    strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		LLMModel:        getEnv("LLM_MODEL", defaultLLMModel),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", defaultOpenAIBaseURL),
		OpenAITimeout:   getSeconds("OPENAI_TIMEOUT_SECONDS", defaultOpenAITimeout),
	}
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		telemetry.Warn("config.invalid", map[string]any{"key": key, "value": raw})
		return def
	}
	return time.Duration(parsed) * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

// IsDevLike reports whether env tolerates missing infrastructure.
func IsDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
