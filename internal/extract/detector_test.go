package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAI is a scripted port.AIProvider for stage tests.
type fakeAI struct {
	chatResponse string
	chatErr      error
	embedVector  []float32
	embedErr     error
}

func (f *fakeAI) ModelName() string { return "fake-model" }

func (f *fakeAI) Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f.chatResponse, f.chatErr
}

func (f *fakeAI) Embed(ctx context.Context, text string) ([]float32, error) {
	return f.embedVector, f.embedErr
}

func TestDetectCandidates(t *testing.T) {
	response := `{
		"candidates": [
			{
				"candidate_id": "c1",
				"quote": "We decided to use Postgres over MySQL",
				"reason": "explicit decision language",
				"supporting_quotes": ["because of JSONB support"]
			}
		]
	}`

	d := NewDetector(&fakeAI{chatResponse: response})
	candidates, status := d.DetectCandidates(context.Background(), "We decided to use Postgres over MySQL because of JSONB support.")

	require.Equal(t, StatusOK, status)
	require.Len(t, candidates, 1)
	assert.Equal(t, "c1", candidates[0].ID)
	assert.Contains(t, candidates[0].Quote, "decided to use Postgres")
	assert.Equal(t, []string{"because of JSONB support"}, candidates[0].SupportingQuotes)
}

func TestDetectCandidatesCodeFence(t *testing.T) {
	response := "```json\n{\"candidates\": [{\"candidate_id\": \"c1\", \"quote\": \"ship it\", \"reason\": \"decision\"}]}\n```"

	d := NewDetector(&fakeAI{chatResponse: response})
	candidates, status := d.DetectCandidates(context.Background(), "ship it")

	require.Equal(t, StatusOK, status)
	require.Len(t, candidates, 1)
	assert.Equal(t, "ship it", candidates[0].Quote)
}

func TestDetectCandidatesNone(t *testing.T) {
	// A risk observation without a choice yields an empty candidate list.
	d := NewDetector(&fakeAI{chatResponse: `{"candidates": []}`})
	candidates, status := d.DetectCandidates(context.Background(), "Database latency increased last week.")

	assert.Equal(t, StatusOK, status)
	assert.Empty(t, candidates)
}

func TestDetectCandidatesMalformedJSON(t *testing.T) {
	d := NewDetector(&fakeAI{chatResponse: "Sure! Here are the candidates I found:"})
	candidates, status := d.DetectCandidates(context.Background(), "anything")

	assert.Equal(t, StatusParseFailure, status)
	assert.Empty(t, candidates)
}

func TestDetectCandidatesTransportFailure(t *testing.T) {
	d := NewDetector(&fakeAI{chatErr: errors.New("connection refused")})
	candidates, status := d.DetectCandidates(context.Background(), "anything")

	assert.Equal(t, StatusTransportFailure, status)
	assert.Empty(t, candidates)
}
