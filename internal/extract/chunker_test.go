package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextReconstruction(t *testing.T) {
	text := "First paragraph about the migration.\n\nSecond paragraph, with more detail.\n\nThird paragraph wrapping up."

	chunks := ChunkText(text)

	require.Len(t, chunks, 3)
	assert.Equal(t, text, strings.Join(chunks, "\n\n"))
}

func TestChunkTextLengthCap(t *testing.T) {
	long := strings.Repeat("a", MaxChunkSize*2+1000)

	chunks := ChunkText(long)

	require.Len(t, chunks, 3)
	assert.Equal(t, MaxChunkSize, len([]rune(chunks[0])))
	assert.Equal(t, MaxChunkSize, len([]rune(chunks[1])))
	assert.Equal(t, 1000, len([]rune(chunks[2])))
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), MaxChunkSize)
	}
	assert.Equal(t, long, strings.Join(chunks, ""))
}

func TestChunkTextExactLimitSingleChunk(t *testing.T) {
	exact := strings.Repeat("x", MaxChunkSize)

	chunks := ChunkText(exact)

	require.Len(t, chunks, 1)
	assert.Equal(t, exact, chunks[0])
}

func TestChunkTextBlankDocument(t *testing.T) {
	for _, text := range []string{"", "\n\n", "\n\n\n\n", "   \n\n\t\n\n  "} {
		assert.Empty(t, ChunkText(text), "input %q", text)
	}
}

func TestChunkTextDropsBlankParagraphs(t *testing.T) {
	text := "keep one\n\n   \n\nkeep two"

	chunks := ChunkText(text)

	require.Len(t, chunks, 2)
	assert.Equal(t, "keep one", chunks[0])
	assert.Equal(t, "keep two", chunks[1])
}

func TestChunkTextMultibyte(t *testing.T) {
	long := strings.Repeat("é", MaxChunkSize+10)

	chunks := ChunkText(long)

	require.Len(t, chunks, 2)
	assert.Equal(t, MaxChunkSize, len([]rune(chunks[0])))
	assert.Equal(t, 10, len([]rune(chunks[1])))
	assert.Equal(t, long, strings.Join(chunks, ""))
}

func TestChunkTextScenarioTwoParagraphs(t *testing.T) {
	text := "We decided to use Postgres over MySQL because of JSONB support.\n\nRisk: migration cost is high but acceptable."

	chunks := ChunkText(text)

	require.Len(t, chunks, 2)
	assert.Contains(t, chunks[0], "decided to use Postgres")
	assert.Contains(t, chunks[1], "migration cost")
}
