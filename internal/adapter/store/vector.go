package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arturoeanton/go-decision-memory/internal/domain"
)

// DecisionMatch is returned by semantic search, including similarity score.
type DecisionMatch struct {
	domain.Decision
	Similarity float64 `json:"similarity"`
}

// SearchSimilarDecisions performs a cosine similarity search over decision
// embeddings. Decisions without an embedding never match.
func (s *PostgresStore) SearchSimilarDecisions(ctx context.Context, queryVector []float32, limit int) ([]DecisionMatch, error) {
	vectorStr := vectorToString(queryVector)
	query := `SELECT d.id, d.title, d.decision, d.context, d.rationale,
	                 d.alternatives_json, d.risks_json, COALESCE(d.owner, ''), d.decided_at, d.confidence, d.created_at,
	                 1 - (d.embedding <=> $1::vector) AS similarity
	          FROM decisions d
	          WHERE d.embedding IS NOT NULL
	          ORDER BY d.embedding <=> $1::vector
	          LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, vectorStr, limit)
	if err != nil {
		return nil, fmt.Errorf("search similar: %w", err)
	}
	defer rows.Close()

	var results []DecisionMatch
	for rows.Next() {
		var m DecisionMatch
		var alternatives, risks []byte
		if err := rows.Scan(
			&m.ID, &m.Title, &m.Decision.Decision, &m.Context, &m.Rationale,
			&alternatives, &risks, &m.Owner, &m.DecidedAt, &m.Confidence, &m.CreatedAt,
			&m.Similarity,
		); err != nil {
			return nil, fmt.Errorf("scan similar: %w", err)
		}
		if err := json.Unmarshal(alternatives, &m.Alternatives); err != nil {
			return nil, fmt.Errorf("decode alternatives: %w", err)
		}
		if err := json.Unmarshal(risks, &m.Risks); err != nil {
			return nil, fmt.Errorf("decode risks: %w", err)
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

// vectorToString converts a float32 slice to pgvector string format: [0.1,0.2,0.3].
func vectorToString(v []float32) string {
	parts := make([]string, len(v))
	for i, val := range v {
		parts[i] = fmt.Sprintf("%g", val)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
