package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/talentsift/scout-cli/internal/model"
)

// JDMatch is the fit analysis of one candidate against a job description.
type JDMatch struct {
	MatchScore     int      `json:"match_score"`
	MatchedSkills  []string `json:"matched_skills"`
	MissingSkills  []string `json:"missing_skills"`
	Strengths      []string `json:"strengths"`
	Concerns       []string `json:"concerns"`
	Recommendation string   `json:"recommendation"`
	Reasoning      string   `json:"reasoning"`
}

// Matcher scores candidates against a job description.
type Matcher struct {
	chatter Chatter
}

// NewMatcher creates a Matcher backed by the given chat provider.
func NewMatcher(chatter Chatter) *Matcher {
	return &Matcher{chatter: chatter}
}

// MatchJD sends one candidate profile for job description matching. The
// returned usage is valid even when the reply could not be parsed.
func (m *Matcher) MatchJD(ctx context.Context, c model.Candidate, jobDescription string) (*JDMatch, Usage, error) {
	prompt, err := buildMatchPrompt(c, jobDescription)
	if err != nil {
		return nil, Usage{}, err
	}
	reply, usage, err := m.chatter.ChatJSON(ctx, matchSystemPrompt, prompt)
	if err != nil {
		return nil, usage, err
	}
	result, err := parseJDMatch(reply)
	if err != nil {
		return nil, usage, err
	}
	return result, usage, nil
}

func parseJDMatch(reply string) (*JDMatch, error) {
	var result JDMatch
	if err := json.Unmarshal([]byte(cleanJSON(reply)), &result); err != nil {
		return nil, eris.Wrap(err, "ai: parse jd match reply")
	}
	return &result, nil
}

// FallbackJDMatch is the zero-score result substituted when matching fails.
// The failure is surfaced in the concerns list and reasoning.
func FallbackJDMatch(err error) *JDMatch {
	diagnostic := fmt.Sprintf("Matching failed: %v", err)
	return &JDMatch{
		MatchScore:     0,
		MatchedSkills:  []string{},
		MissingSkills:  []string{},
		Strengths:      []string{},
		Concerns:       []string{diagnostic},
		Recommendation: "no",
		Reasoning:      diagnostic,
	}
}
