package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DATABASE_URL", "OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_CHAT_MODEL",
		"OPENAI_EMBEDDING_MODEL", "EMBEDDING_DIMENSION", "REQUEST_TIMEOUT_SECONDS", "MAX_RETRIES",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "postgres://localhost:5432/decision_memory?sslmode=disable", cfg.DatabaseURL)
	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.Equal(t, "https://api.openai.com", cfg.OpenAIBaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, 1536, cfg.EmbeddingDimension)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db:5432/dm")
	t.Setenv("OPENAI_API_KEY", "sk-abc")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:11434")
	t.Setenv("OPENAI_CHAT_MODEL", "qwen3")
	t.Setenv("EMBEDDING_DIMENSION", "1024")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "15")

	cfg := Load()

	assert.Equal(t, "postgres://db:5432/dm", cfg.DatabaseURL)
	assert.Equal(t, "sk-abc", cfg.OpenAIAPIKey)
	assert.Equal(t, "http://localhost:11434", cfg.OpenAIBaseURL)
	assert.Equal(t, "qwen3", cfg.ChatModel)
	assert.Equal(t, 1024, cfg.EmbeddingDimension)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("EMBEDDING_DIMENSION", "lots")

	cfg := Load()

	assert.Equal(t, 1536, cfg.EmbeddingDimension)
}
