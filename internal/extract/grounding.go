package extract

import (
	"strings"
	"unicode/utf8"
)

// Grounding policy for decisions whose citations all fail verification:
// below DropThreshold the decision is discarded; at or above it the
// decision is kept with confidence forced to UngroundedConfidence.
const (
	DropThreshold        = 0.5
	UngroundedConfidence = 0.2
)

// VerifiedCitation is a citation whose quote was confirmed as an exact
// substring of the chunk text. Offsets are rune positions into the chunk.
type VerifiedCitation struct {
	Quote     string
	Note      string
	StartChar int
	EndChar   int
}

// VerifyCitations keeps only citations whose quote appears verbatim in the
// chunk text. Paraphrased quotes are dropped, never fuzzy-matched: this is
// the one hard guarantee against fabricated provenance reaching storage.
func VerifyCitations(citations []DraftCitation, chunkText string) []VerifiedCitation {
	var verified []VerifiedCitation
	for _, c := range citations {
		if c.Quote == "" {
			continue
		}
		idx := strings.Index(chunkText, c.Quote)
		if idx < 0 {
			continue
		}
		start := utf8.RuneCountInString(chunkText[:idx])
		verified = append(verified, VerifiedCitation{
			Quote:     c.Quote,
			Note:      c.Note,
			StartChar: start,
			EndChar:   start + utf8.RuneCountInString(c.Quote),
		})
	}
	return verified
}

// ApplyGroundingPolicy decides the fate of a draft given its verified
// citations. It reports whether the draft should be persisted, mutating
// the draft's confidence when it survives without any verified citation.
func ApplyGroundingPolicy(draft *Draft, verified []VerifiedCitation) bool {
	if len(verified) > 0 {
		return true
	}
	if draft.Confidence < DropThreshold {
		return false
	}
	draft.Confidence = UngroundedConfidence
	return true
}
