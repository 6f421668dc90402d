package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyCitations(t *testing.T) {
	chunk := "We decided to use Postgres over MySQL because of JSONB support."
	citations := []DraftCitation{
		{Quote: "decided to use Postgres", Note: "supports decision"},
		{Quote: "we chose PostgreSQL for its JSON features", Note: "paraphrased"},
		{Quote: "", Note: "empty"},
	}

	verified := VerifyCitations(citations, chunk)

	require.Len(t, verified, 1)
	assert.Equal(t, "decided to use Postgres", verified[0].Quote)
	assert.Equal(t, "supports decision", verified[0].Note)
	assert.Equal(t, 3, verified[0].StartChar)
	assert.Equal(t, 3+len("decided to use Postgres"), verified[0].EndChar)
}

func TestVerifyCitationsOffsetsAreRunePositions(t *testing.T) {
	chunk := "naïve approach rejected — we decided to rewrite"

	verified := VerifyCitations([]DraftCitation{{Quote: "we decided to rewrite"}}, chunk)

	require.Len(t, verified, 1)
	assert.Equal(t, 26, verified[0].StartChar)
	assert.Equal(t, 47, verified[0].EndChar)
}

func TestApplyGroundingPolicyKeepsVerified(t *testing.T) {
	draft := &Draft{Decision: "Use Postgres.", Confidence: 0.9}
	verified := []VerifiedCitation{{Quote: "decided"}}

	assert.True(t, ApplyGroundingPolicy(draft, verified))
	assert.Equal(t, 0.9, draft.Confidence)
}

func TestApplyGroundingPolicyForcesConfidenceDown(t *testing.T) {
	draft := &Draft{Decision: "Use Postgres.", Confidence: 0.8}

	assert.True(t, ApplyGroundingPolicy(draft, nil))
	assert.Equal(t, UngroundedConfidence, draft.Confidence)
}

func TestApplyGroundingPolicyDropsLowConfidence(t *testing.T) {
	draft := &Draft{Decision: "Use Postgres.", Confidence: 0.3}

	assert.False(t, ApplyGroundingPolicy(draft, nil))
}
