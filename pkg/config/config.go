package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment
// variables. It is constructed once at process start and passed into each
// component's constructor; nothing reads the environment after Load.
type Config struct {
	// Database
	DatabaseURL string

	// OpenAI-compatible API
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	ChatModel      string
	EmbeddingModel string

	EmbeddingDimension int

	// Outbound request behavior
	RequestTimeout time.Duration
	MaxRetries     int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		DatabaseURL: envOrDefault("DATABASE_URL", "postgres://localhost:5432/decision_memory?sslmode=disable"),

		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  envOrDefault("OPENAI_BASE_URL", "https://api.openai.com"),
		ChatModel:      envOrDefault("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel: envOrDefault("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),

		EmbeddingDimension: envOrDefaultInt("EMBEDDING_DIMENSION", 1536),

		RequestTimeout: time.Duration(envOrDefaultInt("REQUEST_TIMEOUT_SECONDS", 60)) * time.Second,
		MaxRetries:     envOrDefaultInt("MAX_RETRIES", 3),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return fallback
}
