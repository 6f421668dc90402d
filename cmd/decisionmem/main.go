package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	_ "github.com/lib/pq"

	"github.com/arturoeanton/go-decision-memory/internal/adapter/ai"
	"github.com/arturoeanton/go-decision-memory/internal/adapter/store"
	"github.com/arturoeanton/go-decision-memory/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "decisionmem",
	Short: "Extract grounded decision cards from unstructured text",
	Long: `decisionmem ingests text documents (chat logs, PR discussions,
meeting notes), extracts decision cards with verbatim citations, and
stores them in Postgres with full provenance back to the source text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newProvider builds the AI provider from config. A missing API key
// surfaces here as a fatal configuration error, before any pipeline work.
func newProvider(cfg *config.Config) (*ai.OpenAIProvider, error) {
	return ai.NewOpenAIProvider(ai.Config{
		BaseURL:        cfg.OpenAIBaseURL,
		APIKey:         cfg.OpenAIAPIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.RequestTimeout,
		MaxRetries:     cfg.MaxRetries,
	})
}

func newStore(cfg *config.Config) (*store.PostgresStore, error) {
	st, err := store.NewPostgresStore(cfg.DatabaseURL, cfg.EmbeddingDimension)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return st, nil
}
