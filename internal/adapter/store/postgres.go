package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arturoeanton/go-decision-memory/internal/domain"
	"github.com/arturoeanton/go-decision-memory/internal/port"
)

// PostgresStore handles all relational database operations for the
// provenance graph: sources, chunks, decisions, and citations.
type PostgresStore struct {
	db        *sql.DB
	dimension int
}

// NewPostgresStore opens a connection pool and returns a store instance.
// dimension is the width of the pgvector embedding columns.
func NewPostgresStore(databaseURL string, dimension int) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{db: db, dimension: dimension}, nil
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// InitSchema creates the four provenance tables if they do not exist.
// Safe to call repeatedly.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	schema := fmt.Sprintf(schemaTemplate, s.dimension, s.dimension)
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

const schemaTemplate = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS sources (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	source_kind TEXT NOT NULL,
	title TEXT,
	url TEXT,
	author TEXT,
	authored_at TIMESTAMPTZ,
	raw_text TEXT NOT NULL,
	ingested_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS source_chunks (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	source_id UUID NOT NULL REFERENCES sources(id) ON DELETE CASCADE,
	chunk_index INTEGER NOT NULL,
	chunk_text TEXT NOT NULL,
	chunk_hash TEXT NOT NULL,
	embedding vector(%d),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (source_id, chunk_index)
);

CREATE TABLE IF NOT EXISTS decisions (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	title TEXT NOT NULL,
	decision TEXT NOT NULL,
	context TEXT NOT NULL,
	rationale TEXT NOT NULL,
	alternatives_json JSONB NOT NULL,
	risks_json JSONB NOT NULL,
	owner TEXT,
	decided_at TIMESTAMPTZ,
	confidence DOUBLE PRECISION NOT NULL,
	embedding vector(%d),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS decision_citations (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	decision_id UUID NOT NULL REFERENCES decisions(id) ON DELETE CASCADE,
	source_chunk_id UUID NOT NULL REFERENCES source_chunks(id) ON DELETE CASCADE,
	quote TEXT NOT NULL,
	note TEXT,
	start_char INTEGER,
	end_char INTEGER
);
`

// InsertSource persists a source and returns its generated id. The insert
// and its id read happen in one transaction, committed immediately.
func (s *PostgresStore) InsertSource(ctx context.Context, src *domain.Source) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO sources (source_kind, title, url, author, authored_at, raw_text)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, ingested_at`

	var id string
	var ingestedAt time.Time
	err = tx.QueryRowContext(ctx, query,
		string(src.Kind), nullString(src.Title), nullString(src.URL), nullString(src.Author), src.AuthoredAt, src.RawText,
	).Scan(&id, &ingestedAt)
	if err != nil {
		return "", fmt.Errorf("insert source: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit source: %w", err)
	}
	src.ID = id
	src.IngestedAt = ingestedAt
	return id, nil
}

// InsertChunk persists a chunk and returns its generated id.
func (s *PostgresStore) InsertChunk(ctx context.Context, c *domain.Chunk) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO source_chunks (source_id, chunk_index, chunk_text, chunk_hash, embedding)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at`

	var id string
	var createdAt time.Time
	err = tx.QueryRowContext(ctx, query,
		c.SourceID, c.ChunkIndex, c.Text, c.Hash, vectorOrNil(c.Embedding),
	).Scan(&id, &createdAt)
	if err != nil {
		return "", fmt.Errorf("insert chunk: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit chunk: %w", err)
	}
	c.ID = id
	c.CreatedAt = createdAt
	return id, nil
}

// InsertDecision persists a decision card and returns its generated id.
// Alternatives and risks are stored as jsonb arrays; the embedding column
// stays NULL when no vector was produced.
func (s *PostgresStore) InsertDecision(ctx context.Context, d *domain.Decision) (string, error) {
	alternatives, err := json.Marshal(emptyIfNil(d.Alternatives))
	if err != nil {
		return "", fmt.Errorf("marshal alternatives: %w", err)
	}
	risks, err := json.Marshal(emptyIfNil(d.Risks))
	if err != nil {
		return "", fmt.Errorf("marshal risks: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO decisions (title, decision, context, rationale, alternatives_json, risks_json,
	                                 owner, decided_at, confidence, embedding)
	          VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7, $8, $9, $10)
	          RETURNING id, created_at`

	var id string
	var createdAt time.Time
	err = tx.QueryRowContext(ctx, query,
		d.Title, d.Decision, d.Context, d.Rationale, string(alternatives), string(risks),
		nullString(d.Owner), d.DecidedAt, d.Confidence, vectorOrNil(d.Embedding),
	).Scan(&id, &createdAt)
	if err != nil {
		return "", fmt.Errorf("insert decision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit decision: %w", err)
	}
	d.ID = id
	d.CreatedAt = createdAt
	return id, nil
}

// InsertCitation persists an evidence link and returns its generated id.
func (s *PostgresStore) InsertCitation(ctx context.Context, c *domain.Citation) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO decision_citations (decision_id, source_chunk_id, quote, note, start_char, end_char)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	var id string
	err = tx.QueryRowContext(ctx, query,
		c.DecisionID, c.SourceChunkID, c.Quote, nullString(c.Note), c.StartChar, c.EndChar,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert citation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit citation: %w", err)
	}
	c.ID = id
	return id, nil
}

// ListDecisionsBySource returns every decision citing at least one chunk of
// the given source, newest first. Decisions persisted without citations
// under the low-confidence policy are not reachable through a source.
func (s *PostgresStore) ListDecisionsBySource(ctx context.Context, sourceID string) ([]domain.Decision, error) {
	query := `SELECT DISTINCT d.id, d.title, d.decision, d.context, d.rationale,
	                 d.alternatives_json, d.risks_json, COALESCE(d.owner, ''), d.decided_at, d.confidence, d.created_at
	          FROM decisions d
	          JOIN decision_citations dc ON dc.decision_id = d.id
	          JOIN source_chunks sc ON sc.id = dc.source_chunk_id
	          WHERE sc.source_id = $1
	          ORDER BY d.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, sourceID)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	return scanDecisions(rows)
}

// GetCitationsByDecision returns the evidence links of one decision.
func (s *PostgresStore) GetCitationsByDecision(ctx context.Context, decisionID string) ([]domain.Citation, error) {
	query := `SELECT id, decision_id, source_chunk_id, quote, COALESCE(note, ''), start_char, end_char
	          FROM decision_citations WHERE decision_id = $1`

	rows, err := s.db.QueryContext(ctx, query, decisionID)
	if err != nil {
		return nil, fmt.Errorf("list citations: %w", err)
	}
	defer rows.Close()

	var citations []domain.Citation
	for rows.Next() {
		var c domain.Citation
		if err := rows.Scan(&c.ID, &c.DecisionID, &c.SourceChunkID, &c.Quote, &c.Note, &c.StartChar, &c.EndChar); err != nil {
			return nil, fmt.Errorf("scan citation: %w", err)
		}
		citations = append(citations, c)
	}
	return citations, rows.Err()
}

// DeleteSource removes a source; its chunks and their citations go with it
// via ON DELETE CASCADE.
func (s *PostgresStore) DeleteSource(ctx context.Context, sourceID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sources WHERE id = $1`, sourceID)
	if err != nil {
		return fmt.Errorf("delete source: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return port.ErrSourceNotFound
	}
	return nil
}

// DeleteDecision removes a decision and, via cascade, its citations.
func (s *PostgresStore) DeleteDecision(ctx context.Context, decisionID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM decisions WHERE id = $1`, decisionID)
	if err != nil {
		return fmt.Errorf("delete decision: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return port.ErrDecisionNotFound
	}
	return nil
}

func scanDecisions(rows *sql.Rows) ([]domain.Decision, error) {
	var decisions []domain.Decision
	for rows.Next() {
		var d domain.Decision
		var alternatives, risks []byte
		if err := rows.Scan(
			&d.ID, &d.Title, &d.Decision, &d.Context, &d.Rationale,
			&alternatives, &risks, &d.Owner, &d.DecidedAt, &d.Confidence, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		if err := json.Unmarshal(alternatives, &d.Alternatives); err != nil {
			return nil, fmt.Errorf("decode alternatives: %w", err)
		}
		if err := json.Unmarshal(risks, &d.Risks); err != nil {
			return nil, fmt.Errorf("decode risks: %w", err)
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

func emptyIfNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// vectorOrNil renders an embedding as a pgvector literal, or NULL when the
// embedding is absent.
func vectorOrNil(v []float32) interface{} {
	if len(v) == 0 {
		return nil
	}
	return vectorToString(v)
}
