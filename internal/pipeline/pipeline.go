// Package pipeline drives the scrape phase: crawling listing pages,
// extracting candidate records, then validating and deduplicating them.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/talentsift/scout-cli/internal/config"
	"github.com/talentsift/scout-cli/internal/model"
	"github.com/talentsift/scout-cli/internal/source"
	"github.com/talentsift/scout-cli/pkg/crawl4ai"
)

// Result summarizes one scrape session.
type Result struct {
	Candidates []model.Candidate
	Pages      int // pages that yielded candidates
	Extracted  int // rows decoded from extraction output
	Valid      int // rows surviving validation
	Duplicates int // rows dropped by deduplication
}

// Session is one scrape pass against a single source or URL. It owns the
// browser session ID, the dedup set, and the pacing between page fetches.
// Pages are processed strictly one at a time; profile sites respond badly
// to parallel automated traffic.
type Session struct {
	crawler   crawl4ai.Client
	strategy  *crawl4ai.ExtractionStrategy
	required  []string
	sessionID string
	cacheMode crawl4ai.CacheMode
	seen      *SeenSet
	emptyPage EmptyPage
	limiter   *rate.Limiter
	maxPages  int
}

// NewSession creates a scrape session from the configured scrape policy.
// Each session gets a fresh browser session ID and dedup set.
func NewSession(cfg *config.Config, crawler crawl4ai.Client) *Session {
	required := cfg.Scrape.RequiredFields
	if len(required) == 0 {
		required = model.RequiredSections
	}

	emptyPage := NoResults
	if len(cfg.Scrape.NoResultsMarkers) > 0 {
		emptyPage = MarkersPredicate(cfg.Scrape.NoResultsMarkers)
	}

	maxPages := cfg.Scrape.MaxPages
	if maxPages <= 0 {
		maxPages = 3
	}

	prefix := cfg.Scrape.SessionPrefix
	if prefix == "" {
		prefix = "cv-scrape"
	}

	cacheMode := crawl4ai.CacheMode(cfg.Crawler.CacheMode)
	if cacheMode == "" {
		cacheMode = crawl4ai.CacheModeBypass
	}

	delay := time.Duration(cfg.Scrape.PageDelaySecs) * time.Second

	return &Session{
		crawler:   crawler,
		strategy:  CVExtraction(ExtractionProvider(cfg.AI), cfg.AI.APIKey, cfg.AI.Temperature),
		required:  required,
		sessionID: fmt.Sprintf("%s-%s", prefix, uuid.New().String()[:8]),
		cacheMode: cacheMode,
		seen:      NewSeenSet(),
		emptyPage: emptyPage,
		limiter:   rate.NewLimiter(rate.Every(delay), 1),
		maxPages:  maxPages,
	}
}

// SessionID returns the browser session identifier used for this session.
func (s *Session) SessionID() string {
	return s.sessionID
}

// ScrapeSource walks a source's listing pages in order, stopping at the
// first page that yields no candidates or at the page cap.
func (s *Session) ScrapeSource(ctx context.Context, src source.Source) (*Result, error) {
	res := &Result{}
	log := zap.L().With(zap.String("source", src.Name))

	for page := 1; page <= s.maxPages; page++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return res, eris.Wrap(err, "pipeline: inter-page delay")
		}

		pageURL := src.PageURL(page)
		log.Info("pipeline: fetching page",
			zap.Int("page", page),
			zap.String("url", pageURL),
		)

		extracted, found := s.FetchPage(ctx, pageURL, src.CSSSelector)
		if !found {
			log.Info("pipeline: no candidates on page, stopping",
				zap.Int("page", page),
			)
			break
		}

		res.Pages++
		res.Extracted += len(extracted)
		s.absorb(extracted, res, log)

		if !src.Paged() {
			break
		}
	}

	log.Info("pipeline: source scrape finished",
		zap.Int("pages", res.Pages),
		zap.Int("extracted", res.Extracted),
		zap.Int("valid", res.Valid),
		zap.Int("duplicates", res.Duplicates),
		zap.Int("candidates", len(res.Candidates)),
	)
	return res, nil
}

// ScrapeURL fetches a single arbitrary listing page. An empty selector
// falls back to the whole document body.
func (s *Session) ScrapeURL(ctx context.Context, pageURL, selector string) (*Result, error) {
	if selector == "" {
		selector = "body"
	}

	res := &Result{}
	log := zap.L().With(zap.String("url", pageURL))

	if err := s.limiter.Wait(ctx); err != nil {
		return res, eris.Wrap(err, "pipeline: inter-page delay")
	}

	log.Info("pipeline: fetching custom url", zap.String("selector", selector))

	extracted, found := s.FetchPage(ctx, pageURL, selector)
	if !found {
		log.Info("pipeline: no candidates on page")
		return res, nil
	}

	res.Pages = 1
	res.Extracted = len(extracted)
	s.absorb(extracted, res, log)

	log.Info("pipeline: url scrape finished",
		zap.Int("extracted", res.Extracted),
		zap.Int("valid", res.Valid),
		zap.Int("duplicates", res.Duplicates),
		zap.Int("candidates", len(res.Candidates)),
	)
	return res, nil
}

// absorb validates and deduplicates one page's rows into the result.
func (s *Session) absorb(extracted []model.Candidate, res *Result, log *zap.Logger) {
	valid := make([]model.Candidate, 0, len(extracted))
	for i := range extracted {
		if Validate(&extracted[i], s.required) {
			valid = append(valid, extracted[i])
			continue
		}
		log.Debug("pipeline: dropping invalid candidate",
			zap.String("candidate", extracted[i].DisplayName()),
		)
	}
	res.Valid += len(valid)

	unique := Deduplicate(valid, s.seen)
	res.Duplicates += len(valid) - len(unique)
	res.Candidates = append(res.Candidates, unique...)
}
