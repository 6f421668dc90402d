package extract

import (
	"context"
	"encoding/json"

	"github.com/arturoeanton/go-decision-memory/internal/domain"
	"github.com/arturoeanton/go-decision-memory/internal/port"
)

const detectSystemPrompt = `You are an agent designed to identify decision-like statements.

A candidate must include at least ONE of:
1) Explicit decision language (e.g., "we decided", "we'll go with", "ship X")
2) Alternatives comparison (e.g., "X vs Y", "we rejected Y because...")
3) Tradeoff/risk acceptance tied to a choice (risk alone is NOT enough)

Return JSON exactly in this shape:
{
  "candidates": [
    {
      "candidate_id": "c1",
      "quote": "direct quote that indicates a decision",
      "reason": "why this looks like a decision",
      "supporting_quotes": ["...", "..."]
    }
  ]
}

Rules:
- Quotes must be verbatim from the text
- Keep quotes <= 25 words
- If none, return in this shape:
    {
      "candidates": []
    }`

// Detector flags decision-like passages in a chunk, the first stage of the
// two-stage extraction protocol.
type Detector struct {
	ai port.AIProvider
}

// NewDetector creates a candidate detector backed by the given provider.
func NewDetector(ai port.AIProvider) *Detector {
	return &Detector{ai: ai}
}

// DetectCandidates issues one generation request for the chunk and parses
// the structured candidate list. A chunk whose response cannot be parsed
// is treated as containing no decisions, never as a pipeline failure.
func (d *Detector) DetectCandidates(ctx context.Context, chunkText string) ([]domain.Candidate, Status) {
	raw, err := d.ai.Chat(ctx, detectSystemPrompt, "Text:\n\n"+chunkText)
	if err != nil {
		return nil, StatusTransportFailure
	}

	var resp struct {
		Candidates []domain.Candidate `json:"candidates"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &resp); err != nil {
		return nil, StatusParseFailure
	}

	return resp.Candidates, StatusOK
}
