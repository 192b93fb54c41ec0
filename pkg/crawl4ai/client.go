// Package crawl4ai is a client for a self-hosted Crawl4AI crawl service.
// The service drives a headless browser, applies CSS targeting, and can run
// an LLM extraction strategy over the fetched page.
package crawl4ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

// Default base URL for a local Crawl4AI deployment.
const defaultBaseURL = "http://localhost:11235"

// CacheMode controls how the crawl service uses its page cache.
type CacheMode string

const (
	CacheModeBypass  CacheMode = "bypass"
	CacheModeEnabled CacheMode = "enabled"
)

// Client defines the crawl operations used by the pipeline.
type Client interface {
	Crawl(ctx context.Context, req CrawlRequest) (*CrawlResult, error)
}

// ExtractionStrategy configures LLM-driven structured extraction on the
// service side.
type ExtractionStrategy struct {
	Provider       string          `json:"provider"`
	APIToken       string          `json:"api_token,omitempty"`
	Schema         json.RawMessage `json:"schema,omitempty"`
	ExtractionType string          `json:"extraction_type"`
	Instruction    string          `json:"instruction,omitempty"`
	InputFormat    string          `json:"input_format,omitempty"`
	Temperature    float64         `json:"temperature,omitempty"`
}

// CrawlRequest describes one page crawl.
type CrawlRequest struct {
	URL         string
	CSSSelector string
	SessionID   string
	CacheMode   CacheMode
	Extraction  *ExtractionStrategy
}

// CrawlResult is the outcome for a single URL. ExtractedContent is a JSON
// document produced by the extraction strategy, when one was configured.
type CrawlResult struct {
	Success          bool   `json:"success"`
	URL              string `json:"url"`
	CleanedHTML      string `json:"cleaned_html"`
	ExtractedContent string `json:"extracted_content"`
	ErrorMessage     string `json:"error_message"`
}

// browserConfig is the fixed browser profile sent with every crawl.
type browserConfig struct {
	Type     string `json:"type"`
	Headless bool   `json:"headless"`
}

// crawlerConfig is the per-request crawl configuration.
type crawlerConfig struct {
	CacheMode          CacheMode           `json:"cache_mode"`
	SessionID          string              `json:"session_id,omitempty"`
	CSSSelector        string              `json:"css_selector,omitempty"`
	ExtractionStrategy *ExtractionStrategy `json:"extraction_strategy,omitempty"`
}

// crawlBody is the body for POST /crawl.
type crawlBody struct {
	URLs          []string      `json:"urls"`
	BrowserConfig browserConfig `json:"browser_config"`
	CrawlerConfig crawlerConfig `json:"crawler_config"`
}

// crawlResponse is the envelope returned by POST /crawl.
type crawlResponse struct {
	Success bool          `json:"success"`
	Results []CrawlResult `json:"results"`
}

// APIError is returned when the crawl service responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("crawl4ai: HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithAPIToken sets the bearer token for authenticated deployments.
func WithAPIToken(token string) Option {
	return func(c *httpClient) {
		c.apiToken = token
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	baseURL  string
	apiToken string
	http     *http.Client
}

// NewClient creates a new Crawl4AI client. Page crawls with browser
// rendering and LLM extraction are slow, so the default timeout is generous.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 90 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Crawl(ctx context.Context, req CrawlRequest) (*CrawlResult, error) {
	cacheMode := req.CacheMode
	if cacheMode == "" {
		cacheMode = CacheModeBypass
	}

	body := crawlBody{
		URLs: []string{req.URL},
		BrowserConfig: browserConfig{
			Type:     "chromium",
			Headless: true,
		},
		CrawlerConfig: crawlerConfig{
			CacheMode:          cacheMode,
			SessionID:          req.SessionID,
			CSSSelector:        req.CSSSelector,
			ExtractionStrategy: req.Extraction,
		},
	}

	var resp crawlResponse
	if err := c.post(ctx, "/crawl", body, &resp); err != nil {
		return nil, eris.Wrapf(err, "crawl4ai: crawl %s", req.URL)
	}
	if len(resp.Results) == 0 {
		return nil, eris.Errorf("crawl4ai: crawl %s: empty results", req.URL)
	}
	return &resp.Results[0], nil
}

func (c *httpClient) post(ctx context.Context, path string, body any, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return eris.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrap(err, "decode response")
	}

	return nil
}
