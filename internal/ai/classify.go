package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/talentsift/scout-cli/internal/model"
)

// Classification is the role and seniority assessment for one candidate.
type Classification struct {
	MatchedRole     string   `json:"matched_role"`
	ConfidenceScore float64  `json:"confidence_score"`
	SeniorityLevel  string   `json:"seniority_level"`
	Reasoning       string   `json:"reasoning"`
	KeySkills       []string `json:"key_skills"`
}

// Classifier assigns candidates a role and seniority from the taxonomy.
type Classifier struct {
	chatter Chatter
}

// NewClassifier creates a Classifier backed by the given chat provider.
func NewClassifier(chatter Chatter) *Classifier {
	return &Classifier{chatter: chatter}
}

// Classify sends one candidate profile for role classification. The returned
// usage is valid even when the reply could not be parsed.
func (cl *Classifier) Classify(ctx context.Context, c model.Candidate) (*Classification, Usage, error) {
	prompt, err := buildClassifyPrompt(c)
	if err != nil {
		return nil, Usage{}, err
	}
	reply, usage, err := cl.chatter.ChatJSON(ctx, classifySystemPrompt, prompt)
	if err != nil {
		return nil, usage, err
	}
	result, err := parseClassification(reply)
	if err != nil {
		return nil, usage, err
	}
	return result, usage, nil
}

func parseClassification(reply string) (*Classification, error) {
	var result Classification
	if err := json.Unmarshal([]byte(cleanJSON(reply)), &result); err != nil {
		return nil, eris.Wrap(err, "ai: parse classification reply")
	}
	return &result, nil
}

// FallbackClassification is the zero-confidence result substituted when
// classification fails. The record stays in the output, bucketed under
// Other with the failure recorded in its reasoning.
func FallbackClassification(err error) *Classification {
	return &Classification{
		MatchedRole:     model.RoleOther,
		ConfidenceScore: 0.0,
		SeniorityLevel:  model.SeniorityUnknown,
		Reasoning:       fmt.Sprintf("Classification failed: %v", err),
		KeySkills:       []string{},
	}
}
