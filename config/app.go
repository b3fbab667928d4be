package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	Port     string
	GoEnv    string
	LogLevel string

	MongoURI        string
	MongoDB         string
	MongoForceTLS12 bool
	PostgresURI     string
	RedisAddr       string

	JWTSecret    string
	JWTTTL       time.Duration
	CookieSecure bool

	GCSBucket    string
	GCPProjectID string
	GCPLocation  string

	// LLMProvider is "vertex" (Gemini, default) or "openai".
	LLMProvider   string
	GeminiModel   string
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	CacheTTL time.Duration
}

// Load reads the application config from the environment.
// Call godotenv.Load() first if a .env file should be honoured.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:          getEnv("PORT", "8080"),
		GoEnv:         getEnv("GO_ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDB:       getEnv("MONGO_DB", "jobportal"),
		PostgresURI:   os.Getenv("POSTGRES_URI"),
		RedisAddr:     firstEnv("REDIS_ADDR", "REDIS_URI", "REDIS_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTTTL:        time.Duration(getEnvInt("JWT_TTL_HOURS", 24*7)) * time.Hour,
		GCSBucket:     os.Getenv("GCS_BUCKET"),
		GCPProjectID:  os.Getenv("GCP_PROJECT_ID"),
		GCPLocation:   getEnv("GCP_LOCATION", "asia-south1"),
		LLMProvider:   strings.ToLower(getEnv("LLM_PROVIDER", "vertex")),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		CacheTTL:      time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
	}
	cfg.CookieSecure = getEnv("COOKIE_SECURE", "") == "true" || cfg.IsProduction()
	cfg.MongoForceTLS12 = getEnv("MONGO_FORCE_TLS12", "") == "true"

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}
	if cfg.GCSBucket == "" {
		return nil, errors.New("GCS_BUCKET environment variable is not set")
	}
	switch cfg.LLMProvider {
	case "vertex":
		if cfg.GCPProjectID == "" {
			return nil, errors.New("GCP_PROJECT_ID environment variable is not set")
		}
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, errors.New("OPENAI_API_KEY environment variable is not set")
		}
	default:
		return nil, errors.New("LLM_PROVIDER must be vertex or openai")
	}
	return cfg, nil
}

func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.GoEnv, "production")
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
