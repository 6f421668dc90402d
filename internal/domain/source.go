package domain

import "time"

// SourceKind tags the origin of an ingested document.
type SourceKind string

// Supported source kinds.
const (
	SourceKindChatLog      SourceKind = "chat_log"
	SourceKindPullRequest  SourceKind = "pull_request"
	SourceKindMeetingNotes SourceKind = "meeting_notes"
	SourceKindWikiPage     SourceKind = "wiki_page"
)

// Kinds returns all supported source kinds, for CLI help and validation messages.
func Kinds() []SourceKind {
	return []SourceKind{SourceKindChatLog, SourceKindPullRequest, SourceKindMeetingNotes, SourceKindWikiPage}
}

// IsValid reports whether k is a supported source kind.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceKindChatLog, SourceKindPullRequest, SourceKindMeetingNotes, SourceKindWikiPage:
		return true
	}
	return false
}

// Source represents one ingested document. A source is immutable once
// created; deleting it cascades to its chunks and their citations.
type Source struct {
	ID         string     `json:"id"          db:"id"`
	Kind       SourceKind `json:"source_kind" db:"source_kind"`
	Title      string     `json:"title,omitempty"  db:"title"`
	URL        string     `json:"url,omitempty"    db:"url"`
	Author     string     `json:"author,omitempty" db:"author"`
	AuthoredAt *time.Time `json:"authored_at,omitempty" db:"authored_at"`
	RawText    string     `json:"-"           db:"raw_text"`
	IngestedAt time.Time  `json:"ingested_at" db:"ingested_at"`
}
