package ai

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/talentsift/scout-cli/internal/model"
)

// RankStats summarizes one scoring pass.
type RankStats struct {
	Classified        int
	ClassifyFallbacks int
	Matched           int
	MatchFallbacks    int
	Usage             Usage
}

// Ranker runs the scoring phase: role classification for every candidate,
// job description matching when a JD is supplied, then ordering by final
// match score.
type Ranker struct {
	classifier *Classifier
	matcher    *Matcher
}

// NewRanker creates a Ranker with both adapters backed by the same provider.
func NewRanker(chatter Chatter) *Ranker {
	return &Ranker{
		classifier: NewClassifier(chatter),
		matcher:    NewMatcher(chatter),
	}
}

// Rank scores candidates one at a time and returns them ordered by
// descending match score. Ties keep their arrival order. Failed adapter
// calls degrade to fallback results and are counted in the stats; the
// input slice is mutated in place. Without a job description the match
// score defaults to classification confidence scaled to 0-100.
func (r *Ranker) Rank(ctx context.Context, candidates []model.Candidate, jobDescription string) ([]model.Candidate, RankStats, error) {
	var stats RankStats

	zap.L().Info("rank: scoring candidates",
		zap.Int("count", len(candidates)),
		zap.Bool("jd_matching", jobDescription != ""),
	)

	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return candidates, stats, eris.Wrap(err, "ai: rank interrupted")
		}
		cand := &candidates[i]

		zap.L().Debug("rank: classifying candidate",
			zap.Int("index", i+1),
			zap.Int("total", len(candidates)),
			zap.String("candidate", cand.DisplayName()),
		)

		classification, usage, err := r.classifier.Classify(ctx, *cand)
		stats.Usage.Add(usage)
		if err != nil {
			zap.L().Warn("rank: classification failed",
				zap.String("candidate", cand.DisplayName()),
				zap.Error(err),
			)
			classification = FallbackClassification(err)
			stats.ClassifyFallbacks++
		} else {
			stats.Classified++
		}
		applyClassification(cand, classification)

		if jobDescription != "" {
			match, usage, err := r.matcher.MatchJD(ctx, *cand, jobDescription)
			stats.Usage.Add(usage)
			if err != nil {
				zap.L().Warn("rank: jd matching failed",
					zap.String("candidate", cand.DisplayName()),
					zap.Error(err),
				)
				match = FallbackJDMatch(err)
				stats.MatchFallbacks++
			} else {
				stats.Matched++
			}
			applyJDMatch(cand, match)
		} else {
			score := classification.ConfidenceScore * 100
			cand.AIJDMatchScore = &score
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].SortScore() > candidates[j].SortScore()
	})

	zap.L().Info("rank: scoring complete",
		zap.Int("classified", stats.Classified),
		zap.Int("classify_fallbacks", stats.ClassifyFallbacks),
		zap.Int("matched", stats.Matched),
		zap.Int("match_fallbacks", stats.MatchFallbacks),
		zap.Int("prompt_tokens", stats.Usage.PromptTokens),
		zap.Int("completion_tokens", stats.Usage.CompletionTokens),
	)

	return candidates, stats, nil
}

func applyClassification(c *model.Candidate, cl *Classification) {
	confidence := cl.ConfidenceScore
	c.AIMatchedRole = cl.MatchedRole
	c.AIConfidenceScore = &confidence
	c.AISeniority = cl.SeniorityLevel
	c.AIReasoning = cl.Reasoning
	c.AIKeySkills = cl.KeySkills
}

func applyJDMatch(c *model.Candidate, m *JDMatch) {
	score := float64(m.MatchScore)
	c.AIJDMatchScore = &score
	c.AIMatchedSkills = m.MatchedSkills
	c.AIMissingSkills = m.MissingSkills
	c.AIRecommendation = m.Recommendation
	c.AIJDReasoning = m.Reasoning
}
