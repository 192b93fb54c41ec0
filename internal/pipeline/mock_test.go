package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"
	"golang.org/x/time/rate"

	"github.com/talentsift/scout-cli/internal/model"
	"github.com/talentsift/scout-cli/pkg/crawl4ai"
)

// --- Crawl4AI Mock ---

type mockCrawler struct {
	mock.Mock
}

func (m *mockCrawler) Crawl(ctx context.Context, req crawl4ai.CrawlRequest) (*crawl4ai.CrawlResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crawl4ai.CrawlResult), args.Error(1)
}

// --- Request matchers ---

// isProbe matches the first-pass crawl: no extraction strategy attached.
func isProbe(url string) any {
	return mock.MatchedBy(func(req crawl4ai.CrawlRequest) bool {
		return req.URL == url && req.Extraction == nil
	})
}

// isExtraction matches the second-pass crawl carrying the LLM strategy.
func isExtraction(url string) any {
	return mock.MatchedBy(func(req crawl4ai.CrawlRequest) bool {
		return req.URL == url && req.Extraction != nil
	})
}

// --- Session fixture ---

// newTestSession builds a Session wired to the mock crawler with no
// inter-page pacing, so tests run instantly.
func newTestSession(crawler crawl4ai.Client) *Session {
	return &Session{
		crawler:   crawler,
		strategy:  CVExtraction("groq/deepseek-r1-distill-llama-70b", "gsk_test", 0.3),
		required:  model.RequiredSections,
		sessionID: "cv-scrape-test",
		cacheMode: crawl4ai.CacheModeBypass,
		seen:      NewSeenSet(),
		emptyPage: NoResults,
		limiter:   rate.NewLimiter(rate.Inf, 1),
		maxPages:  3,
	}
}

// --- Ensure interface compliance ---
var _ crawl4ai.Client = (*mockCrawler)(nil)
