package domain

import "time"

// Candidate is a span of source text flagged as possibly describing a
// decision, before full extraction. The quote anchors the candidate to a
// verbatim passage of its chunk.
type Candidate struct {
	ID               string   `json:"candidate_id"`
	Quote            string   `json:"quote"`
	Reason           string   `json:"reason"`
	SupportingQuotes []string `json:"supporting_quotes,omitempty"`
}

// Decision is a synthesized decision card. Decisions are immutable once
// persisted; corrections create new records rather than updates.
type Decision struct {
	ID           string     `json:"id"           db:"id"`
	Title        string     `json:"title"        db:"title"`
	Decision     string     `json:"decision"     db:"decision"`
	Context      string     `json:"context"      db:"context"`
	Rationale    string     `json:"rationale"    db:"rationale"`
	Alternatives []string   `json:"alternatives" db:"alternatives_json"`
	Risks        []string   `json:"risks"        db:"risks_json"`
	Owner        string     `json:"owner,omitempty"      db:"owner"`
	DecidedAt    *time.Time `json:"decided_at,omitempty" db:"decided_at"`
	Confidence   float64    `json:"confidence"   db:"confidence"`
	Embedding    []float32  `json:"-"            db:"embedding"`
	Citations    []Citation `json:"citations,omitempty"`
	CreatedAt    time.Time  `json:"created_at"   db:"created_at"`
}

// EmbeddingText is the decision-describing string handed to the embedder:
// decision statement, context, and rationale joined with spaces. An empty
// result means the decision carries no embeddable text and the stored
// vector stays NULL.
func (d Decision) EmbeddingText() string {
	return joinNonEmpty(d.Decision, d.Context, d.Rationale)
}

// Citation is an evidence link from a decision back to the chunk the quote
// was extracted from. The quote is always an exact substring of the
// referenced chunk's text; offsets are rune positions within the chunk.
type Citation struct {
	ID            string `json:"id"              db:"id"`
	DecisionID    string `json:"decision_id"     db:"decision_id"`
	SourceChunkID string `json:"source_chunk_id" db:"source_chunk_id"`
	Quote         string `json:"quote"           db:"quote"`
	Note          string `json:"note,omitempty"  db:"note"`
	StartChar     *int   `json:"start_char,omitempty" db:"start_char"`
	EndChar       *int   `json:"end_char,omitempty"   db:"end_char"`
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}
