package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Chunk is a contiguous, bounded slice of a source's raw text. Chunks are
// written once per chunking pass and never updated; concatenating a
// source's chunks in ChunkIndex order reconstructs the document text.
type Chunk struct {
	ID         string    `json:"id"          db:"id"`
	SourceID   string    `json:"source_id"   db:"source_id"`
	ChunkIndex int       `json:"chunk_index" db:"chunk_index"`
	Text       string    `json:"text"        db:"chunk_text"`
	Hash       string    `json:"hash"        db:"chunk_hash"`
	Embedding  []float32 `json:"-"           db:"embedding"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
}

// Fingerprint returns the deterministic content hash of a chunk's text,
// used for change detection and deduplication.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
