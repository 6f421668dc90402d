package extract

import "strings"

// MaxChunkSize is the hard cap on chunk length in characters. It bounds
// the prompt size handed to the generation model.
const MaxChunkSize = 2500

// ChunkText splits text into bounded, paragraph-respecting chunks.
// Paragraphs are blank-line separated; whitespace-only paragraphs are
// dropped. A paragraph longer than MaxChunkSize is sliced greedily into
// full-size segments with the remainder emitted as its own chunk. The
// returned order is emission order and defines the chunk sequence index.
//
// The function is pure: no I/O, no network.
func ChunkText(text string) []string {
	paragraphs := strings.Split(text, "\n\n")
	var chunks []string
	for _, paragraph := range paragraphs {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		runes := []rune(paragraph)
		for len(runes) > MaxChunkSize {
			chunks = append(chunks, string(runes[:MaxChunkSize]))
			runes = runes[MaxChunkSize:]
		}
		chunks = append(chunks, string(runes))
	}
	return chunks
}
