package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arturoeanton/go-decision-memory/internal/adapter/store"
	"github.com/arturoeanton/go-decision-memory/internal/port"
)

// SearchService retrieves stored decisions by semantic similarity. It is a
// downstream consumer of the embedding column, not a query API.
type SearchService struct {
	ai    port.AIProvider
	store *store.PostgresStore
}

// NewSearchService creates a new search service.
func NewSearchService(ai port.AIProvider, st *store.PostgresStore) *SearchService {
	return &SearchService{ai: ai, store: st}
}

// Search embeds the query text and returns the closest decisions by cosine
// similarity.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]store.DecisionMatch, error) {
	slog.Info("decision search", "query", query, "limit", limit)

	vector, err := s.ai.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := s.store.SearchSimilarDecisions(ctx, vector, limit)
	if err != nil {
		return nil, fmt.Errorf("search similar: %w", err)
	}

	return matches, nil
}
