package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testJD = "Senior backend engineer. Go, PostgreSQL, Kubernetes required."

func TestMatchJDSuccess(t *testing.T) {
	t.Parallel()

	mc := new(mockChatter)
	reply := `{
		"match_score": 82,
		"matched_skills": ["Go", "PostgreSQL"],
		"missing_skills": ["Kubernetes"],
		"strengths": ["Solid backend experience", "Database depth"],
		"concerns": ["No container orchestration exposure"],
		"recommendation": "yes",
		"reasoning": "Covers most requirements."
	}`
	mc.On("ChatJSON", mock.Anything, matchSystemPrompt, mock.MatchedBy(func(user string) bool {
		return strings.Contains(user, testJD) && strings.Contains(user, "Linh Tran")
	})).Return(reply, Usage{PromptTokens: 200, CompletionTokens: 90}, nil)

	m := NewMatcher(mc)
	result, usage, err := m.MatchJD(context.Background(), sampleCandidate("Linh Tran", "linh@example.com"), testJD)
	require.NoError(t, err)
	assert.Equal(t, 82, result.MatchScore)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, result.MatchedSkills)
	assert.Equal(t, []string{"Kubernetes"}, result.MissingSkills)
	assert.Len(t, result.Strengths, 2)
	assert.Equal(t, "yes", result.Recommendation)
	assert.Equal(t, 290, usage.Total())

	mc.AssertExpectations(t)
}

func TestMatchJDProviderError(t *testing.T) {
	t.Parallel()

	mc := new(mockChatter)
	mc.On("ChatJSON", mock.Anything, mock.Anything, mock.Anything).
		Return("", Usage{}, eris.New("timeout"))

	m := NewMatcher(mc)
	result, _, err := m.MatchJD(context.Background(), sampleCandidate("Linh Tran", ""), testJD)
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestMatchJDMalformedReply(t *testing.T) {
	t.Parallel()

	mc := new(mockChatter)
	mc.On("ChatJSON", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"match_score": "very high"}`, Usage{PromptTokens: 50, CompletionTokens: 8}, nil)

	m := NewMatcher(mc)
	result, usage, err := m.MatchJD(context.Background(), sampleCandidate("Linh Tran", ""), testJD)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 58, usage.Total())
}

func TestFallbackJDMatch(t *testing.T) {
	t.Parallel()

	fb := FallbackJDMatch(eris.New("status 500"))
	assert.Equal(t, 0, fb.MatchScore)
	assert.Empty(t, fb.MatchedSkills)
	assert.Empty(t, fb.MissingSkills)
	assert.Empty(t, fb.Strengths)
	require.Len(t, fb.Concerns, 1)
	assert.Contains(t, fb.Concerns[0], "Matching failed")
	assert.Equal(t, "no", fb.Recommendation)
	assert.Contains(t, fb.Reasoning, "status 500")
}
