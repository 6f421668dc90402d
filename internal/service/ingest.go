package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/arturoeanton/go-decision-memory/internal/domain"
	"github.com/arturoeanton/go-decision-memory/internal/extract"
	"github.com/arturoeanton/go-decision-memory/internal/port"
)

// Store is the persistence surface the pipeline needs: idempotent schema
// init plus the four id-returning inserts of the provenance graph.
type Store interface {
	InitSchema(ctx context.Context) error
	InsertSource(ctx context.Context, src *domain.Source) (string, error)
	InsertChunk(ctx context.Context, c *domain.Chunk) (string, error)
	InsertDecision(ctx context.Context, d *domain.Decision) (string, error)
	InsertCitation(ctx context.Context, c *domain.Citation) (string, error)
}

// IngestRequest describes one document to run through the pipeline.
type IngestRequest struct {
	Kind       domain.SourceKind
	Title      string
	URL        string
	Author     string
	AuthoredAt *time.Time
	Text       string
}

// IngestService sequences the extraction pipeline for one document:
// persist source → chunk → per chunk: persist, detect → per candidate:
// synthesize → ground → embed → persist decision and citations.
type IngestService struct {
	ai          port.AIProvider
	store       Store
	detector    *extract.Detector
	synthesizer *extract.Synthesizer
}

// NewIngestService creates the pipeline orchestrator.
func NewIngestService(ai port.AIProvider, store Store) *IngestService {
	return &IngestService{
		ai:          ai,
		store:       store,
		detector:    extract.NewDetector(ai),
		synthesizer: extract.NewSynthesizer(ai),
	}
}

// Ingest runs one document through the pipeline and returns every accepted
// decision card. Failures in a single candidate's synthesis, grounding, or
// embedding are logged and skipped; persistence failures abort the
// document, since downstream rows would dangle.
func (s *IngestService) Ingest(ctx context.Context, req IngestRequest) ([]domain.Decision, error) {
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("invalid source kind %q (supported: %v)", req.Kind, domain.Kinds())
	}

	runID := uuid.NewString()
	log := slog.With("run_id", runID, "source_kind", string(req.Kind))

	if err := s.store.InitSchema(ctx); err != nil {
		return nil, err
	}

	source := &domain.Source{
		Kind:       req.Kind,
		Title:      req.Title,
		URL:        req.URL,
		Author:     req.Author,
		AuthoredAt: req.AuthoredAt,
		RawText:    req.Text,
	}
	sourceID, err := s.store.InsertSource(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("persist source: %w", err)
	}

	chunks := extract.ChunkText(req.Text)
	log.Info("document chunked", "source_id", sourceID, "chunks", len(chunks))

	var accepted []domain.Decision
	for index, chunkText := range chunks {
		chunk := &domain.Chunk{
			SourceID:   sourceID,
			ChunkIndex: index,
			Text:       chunkText,
			Hash:       domain.Fingerprint(chunkText),
		}
		chunkID, err := s.store.InsertChunk(ctx, chunk)
		if err != nil {
			return accepted, fmt.Errorf("persist chunk %d: %w", index, err)
		}

		candidates, status := s.detector.DetectCandidates(ctx, chunkText)
		if status != extract.StatusOK {
			log.Warn("candidate detection failed, skipping chunk",
				"chunk_index", index, "status", status.String())
			continue
		}

		for _, candidate := range candidates {
			decision, err := s.processCandidate(ctx, log, candidate, chunkText, chunkID)
			if err != nil {
				return accepted, err
			}
			if decision != nil {
				accepted = append(accepted, *decision)
			}
		}
	}

	log.Info("ingestion complete", "source_id", sourceID, "decisions", len(accepted))
	return accepted, nil
}

// processCandidate runs synthesis, grounding, embedding, and persistence
// for one candidate. A nil decision with nil error means the candidate was
// skipped; a non-nil error is a persistence failure and aborts the document.
func (s *IngestService) processCandidate(
	ctx context.Context,
	log *slog.Logger,
	candidate domain.Candidate,
	chunkText, chunkID string,
) (*domain.Decision, error) {
	draft, status := s.synthesizer.Synthesize(ctx, candidate, chunkText)
	if status != extract.StatusOK {
		log.Warn("synthesis failed, skipping candidate",
			"candidate_id", candidate.ID, "status", status.String())
		return nil, nil
	}
	if draft == nil {
		return nil, nil
	}

	verified := extract.VerifyCitations(draft.Citations, chunkText)
	if dropped := len(draft.Citations) - len(verified); dropped > 0 {
		log.Warn("dropped ungrounded citations",
			"candidate_id", candidate.ID, "dropped", dropped, "kept", len(verified))
	}
	if !extract.ApplyGroundingPolicy(draft, verified) {
		log.Info("discarding decision with no verified citations",
			"candidate_id", candidate.ID, "confidence", draft.Confidence)
		return nil, nil
	}

	decision := draft.ToDecision()

	if text := decision.EmbeddingText(); text != "" {
		vector, err := s.ai.Embed(ctx, text)
		if err != nil {
			log.Warn("embedding failed, storing decision without vector",
				"candidate_id", candidate.ID, "error", err)
		} else {
			decision.Embedding = vector
		}
	}

	decisionID, err := s.store.InsertDecision(ctx, &decision)
	if err != nil {
		return nil, fmt.Errorf("persist decision: %w", err)
	}

	for _, vc := range verified {
		start, end := vc.StartChar, vc.EndChar
		citation := domain.Citation{
			DecisionID:    decisionID,
			SourceChunkID: chunkID,
			Quote:         vc.Quote,
			Note:          vc.Note,
			StartChar:     &start,
			EndChar:       &end,
		}
		if _, err := s.store.InsertCitation(ctx, &citation); err != nil {
			return nil, fmt.Errorf("persist citation: %w", err)
		}
		decision.Citations = append(decision.Citations, citation)
	}

	return &decision, nil
}
