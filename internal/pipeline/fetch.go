package pipeline

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/talentsift/scout-cli/internal/model"
	"github.com/talentsift/scout-cli/internal/schema"
	"github.com/talentsift/scout-cli/pkg/crawl4ai"
)

// FetchPage crawls one listing page in two passes: a cheap probe that
// checks the page renders results at all, then an LLM extraction crawl.
// It returns the decoded candidates and whether the page yielded any.
// Failures degrade to an empty page so pagination can stop cleanly.
func (s *Session) FetchPage(ctx context.Context, pageURL, selector string) ([]model.Candidate, bool) {
	probe, err := s.crawler.Crawl(ctx, crawl4ai.CrawlRequest{
		URL:       pageURL,
		SessionID: s.sessionID,
		CacheMode: s.cacheMode,
	})
	if err != nil {
		zap.L().Warn("fetch: probe crawl failed",
			zap.String("url", pageURL),
			zap.Error(err),
		)
		return nil, false
	}
	if !probe.Success || strings.TrimSpace(probe.CleanedHTML) == "" {
		zap.L().Info("fetch: page has no content",
			zap.String("url", pageURL),
			zap.String("error", probe.ErrorMessage),
		)
		return nil, false
	}
	if s.emptyPage(probe.CleanedHTML) {
		zap.L().Info("fetch: no-results marker on page",
			zap.String("url", pageURL),
		)
		return nil, false
	}

	result, err := s.crawler.Crawl(ctx, crawl4ai.CrawlRequest{
		URL:         pageURL,
		CSSSelector: selector,
		SessionID:   s.sessionID,
		CacheMode:   s.cacheMode,
		Extraction:  s.strategy,
	})
	if err != nil {
		zap.L().Warn("fetch: extraction crawl failed",
			zap.String("url", pageURL),
			zap.Error(err),
		)
		return nil, false
	}
	if !result.Success {
		zap.L().Warn("fetch: extraction unsuccessful",
			zap.String("url", pageURL),
			zap.String("error", result.ErrorMessage),
		)
		return nil, false
	}

	candidates := decodeCandidates(result.ExtractedContent)
	return candidates, len(candidates) > 0
}

// decodeCandidates parses the extraction strategy's output. The service
// returns a JSON array of candidate rows; a lone object still counts as
// one row. Rows failing the candidate schema and rows the extractor
// flagged as errored are dropped, not fatal.
func decodeCandidates(extracted string) []model.Candidate {
	extracted = strings.TrimSpace(extracted)
	if extracted == "" {
		return nil
	}

	var rows []json.RawMessage
	if err := json.Unmarshal([]byte(extracted), &rows); err != nil {
		var single json.RawMessage
		if err := json.Unmarshal([]byte(extracted), &single); err != nil {
			zap.L().Warn("fetch: extracted content is not valid JSON",
				zap.Error(err),
			)
			return nil
		}
		rows = []json.RawMessage{single}
	}

	candidates := make([]model.Candidate, 0, len(rows))
	for i, raw := range rows {
		var flag struct {
			Error bool `json:"error"`
		}
		if err := json.Unmarshal(raw, &flag); err != nil || flag.Error {
			zap.L().Debug("fetch: skipping errored extraction row",
				zap.Int("row", i),
			)
			continue
		}

		if err := schema.ValidateCandidate(raw); err != nil {
			zap.L().Debug("fetch: dropping row failing candidate schema",
				zap.Int("row", i),
				zap.Error(err),
			)
			continue
		}

		var c model.Candidate
		if err := json.Unmarshal(raw, &c); err != nil {
			zap.L().Debug("fetch: dropping undecodable row",
				zap.Int("row", i),
				zap.Error(err),
			)
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates
}
