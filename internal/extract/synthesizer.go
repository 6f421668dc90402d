package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arturoeanton/go-decision-memory/internal/domain"
	"github.com/arturoeanton/go-decision-memory/internal/port"
)

const synthesisSystemPrompt = `You are an information extraction engine. You must not invent facts.
Only use the provided text. If info is missing, output null or [].
Always include citations as direct short quotes from the text.

Return JSON exactly in this shape:
{
  "title": "...",
  "decision": "...",
  "context": "...",
  "rationale": "...",
  "alternatives": ["...", "..."],
  "risks": ["...", "..."],
  "owner": null,
  "decided_at": null,
  "confidence": 0.0,
  "citations": [
    {"quote": "...", "note": "supports decision"},
    {"quote": "...", "note": "supports rationale"}
  ]
}

Rules:
- decision must be one sentence
- alternatives/risks can be []
- citations must be verbatim quotes from provided text
- if not enough support, lower confidence and leave fields empty rather than guessing`

// Draft is the validated output of the synthesis stage, before citation
// grounding. Citations are still unverified claims at this point.
type Draft struct {
	Title        string
	Decision     string
	Context      string
	Rationale    string
	Alternatives []string
	Risks        []string
	Owner        string
	DecidedAt    *time.Time
	Confidence   float64
	Citations    []DraftCitation
}

// DraftCitation is an unverified quote/note pair returned by the model.
type DraftCitation struct {
	Quote string `json:"quote"`
	Note  string `json:"note"`
}

// ToDecision converts a grounded draft into a decision card.
func (d *Draft) ToDecision() domain.Decision {
	return domain.Decision{
		Title:        d.Title,
		Decision:     d.Decision,
		Context:      d.Context,
		Rationale:    d.Rationale,
		Alternatives: d.Alternatives,
		Risks:        d.Risks,
		Owner:        d.Owner,
		DecidedAt:    d.DecidedAt,
		Confidence:   d.Confidence,
	}
}

// Synthesizer turns a detected candidate into a structured, citation-backed
// draft, the second stage of the extraction protocol.
type Synthesizer struct {
	ai port.AIProvider
}

// NewSynthesizer creates a decision synthesizer backed by the given provider.
func NewSynthesizer(ai port.AIProvider) *Synthesizer {
	return &Synthesizer{ai: ai}
}

// Synthesize issues one generation request for the candidate, supplying its
// anchor quote and the full chunk as context. A malformed response yields a
// nil draft with StatusParseFailure; a well-formed response without a
// decision statement yields a nil draft with StatusOK ("no decision
// produced"). Both are per-item outcomes, never pipeline failures.
func (s *Synthesizer) Synthesize(ctx context.Context, candidate domain.Candidate, chunkText string) (*Draft, Status) {
	userPrompt := fmt.Sprintf("Candidate quote:\n%s\n\nContext:\n%s", candidate.Quote, chunkText)

	raw, err := s.ai.Chat(ctx, synthesisSystemPrompt, userPrompt)
	if err != nil {
		return nil, StatusTransportFailure
	}

	draft, ok := parseDraft(stripCodeFence(raw))
	if !ok {
		return nil, StatusParseFailure
	}
	if draft.Decision == "" {
		return nil, StatusOK
	}
	return draft, StatusOK
}

// parseDraft is a validating parse of the model's JSON: fields that do not
// match the expected shape are nulled out rather than trusted, and only a
// top-level non-object rejects the whole response.
func parseDraft(content string) (*Draft, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return nil, false
	}

	draft := &Draft{
		Title:        stringField(fields, "title"),
		Decision:     firstSentence(stringField(fields, "decision")),
		Context:      stringField(fields, "context"),
		Rationale:    stringField(fields, "rationale"),
		Alternatives: stringListField(fields, "alternatives"),
		Risks:        stringListField(fields, "risks"),
		Owner:        stringField(fields, "owner"),
		DecidedAt:    timeField(fields, "decided_at"),
		Confidence:   clampConfidence(floatField(fields, "confidence")),
	}

	var citations []DraftCitation
	if raw, ok := fields["citations"]; ok {
		var parsed []DraftCitation
		if err := json.Unmarshal(raw, &parsed); err == nil {
			for _, c := range parsed {
				if c.Quote != "" {
					citations = append(citations, c)
				}
			}
		}
	}
	draft.Citations = citations

	return draft, true
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func stringListField(fields map[string]json.RawMessage, key string) []string {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	var out []string
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func floatField(fields map[string]json.RawMessage, key string) float64 {
	raw, ok := fields[key]
	if !ok {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	return f
}

// timeField accepts RFC 3339 timestamps or bare dates; anything else is null.
func timeField(fields map[string]json.RawMessage, key string) *time.Time {
	s := stringField(fields, key)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func clampConfidence(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// firstSentence enforces the one-sentence constraint on the decision
// statement by cutting at the first sentence terminator.
func firstSentence(s string) string {
	for i, r := range s {
		if r == '.' || r == '!' || r == '?' {
			return s[:i+1]
		}
	}
	return s
}
