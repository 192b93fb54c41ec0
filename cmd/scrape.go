package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/talentsift/scout-cli/internal/ai"
	"github.com/talentsift/scout-cli/internal/export"
	"github.com/talentsift/scout-cli/internal/model"
	"github.com/talentsift/scout-cli/internal/pipeline"
	"github.com/talentsift/scout-cli/internal/source"
	"github.com/talentsift/scout-cli/internal/store"
	"github.com/talentsift/scout-cli/pkg/crawl4ai"
)

var (
	scrapeURL      string
	scrapeSelector string
	scrapeSource   string
)

func init() {
	rootCmd.Flags().StringVar(&scrapeURL, "url", "", "scrape a single listing page instead of the configured source")
	rootCmd.Flags().StringVar(&scrapeSelector, "selector", "", "CSS selector for --url (defaults to the whole body)")
	rootCmd.Flags().StringVar(&scrapeSource, "source", "", "source key to scrape (overrides scrape.source)")
}

// runScrape is the bare-invocation flow: scrape, rank, display, export.
func runScrape(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return err
	}

	jd := loadJobDescription(cfg.Output.JobDescriptionFile)

	// Resolve the target before touching anything stateful; an unknown
	// source name must fail before a run row exists.
	var src source.Source
	target := scrapeURL
	if scrapeURL == "" {
		reg, err := source.Load(cfg.Scrape.SourcesFile)
		if err != nil {
			return err
		}
		key := cfg.Scrape.Source
		if scrapeSource != "" {
			key = scrapeSource
		}
		src, err = reg.Get(key)
		if err != nil {
			return err
		}
		if !src.Enabled {
			zap.L().Warn("source is disabled, scraping anyway",
				zap.String("source", key),
				zap.Strings("enabled", reg.Enabled()),
			)
		}
		target = key
	}

	st, err := initStore(ctx)
	if err != nil {
		return eris.Wrap(err, "open store")
	}
	defer st.Close() //nolint:errcheck
	if err := st.Migrate(ctx); err != nil {
		return eris.Wrap(err, "migrate store")
	}

	runID := createRun(ctx, st, target)

	session := pipeline.NewSession(cfg, newCrawler())
	zap.L().Info("scrape starting",
		zap.String("target", target),
		zap.String("session_id", session.SessionID()),
		zap.Bool("jd_matching", jd != ""),
	)

	recordStatus(ctx, st, runID, model.RunStatusScraping)

	var res *pipeline.Result
	if scrapeURL != "" {
		res, err = session.ScrapeURL(ctx, scrapeURL, scrapeSelector)
	} else {
		res, err = session.ScrapeSource(ctx, src)
	}
	if err != nil {
		recordFailure(ctx, st, runID, err)
		return eris.Wrap(err, "scrape")
	}

	if len(res.Candidates) == 0 {
		zap.L().Warn("no candidates found during scraping", zap.String("target", target))
		recordStatus(ctx, st, runID, model.RunStatusEmpty)
		return nil
	}

	chatter, err := ai.New(ctx, ai.Options{
		Provider:    cfg.AI.Provider,
		Model:       cfg.AI.Model,
		APIKey:      cfg.AI.APIKey,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
	})
	if err != nil {
		recordFailure(ctx, st, runID, err)
		return err
	}

	recordStatus(ctx, st, runID, model.RunStatusScoring)

	ranked, stats, err := ai.NewRanker(chatter).Rank(ctx, res.Candidates, jd)
	if err != nil {
		recordFailure(ctx, st, runID, err)
		return eris.Wrap(err, "rank")
	}

	displayTop(os.Stdout, ranked, cfg.Output.TopDisplay)

	files := export.Files{
		CSV:  cfg.Output.CSVFile,
		JSON: cfg.Output.JSONFile,
		XLSX: cfg.Output.XLSXFile,
	}
	if err := export.WriteAll(files, ranked); err != nil {
		recordFailure(ctx, st, runID, err)
		return eris.Wrap(err, "export")
	}

	result := &model.RunResult{
		Pages:             res.Pages,
		Extracted:         res.Extracted,
		Valid:             res.Valid,
		Duplicates:        res.Duplicates,
		Candidates:        len(ranked),
		ClassifyFallbacks: stats.ClassifyFallbacks,
		MatchFallbacks:    stats.MatchFallbacks,
		JDMatched:         jd != "",
		TokensIn:          stats.Usage.PromptTokens,
		TokensOut:         stats.Usage.CompletionTokens,
		DurationSecs:      time.Since(start).Seconds(),
		CSVFile:           files.CSV,
		JSONFile:          files.JSON,
		XLSXFile:          files.XLSX,
	}
	recordResult(ctx, st, runID, result)

	zap.L().Info("scrape complete",
		zap.String("target", target),
		zap.Int("pages", result.Pages),
		zap.Int("candidates", result.Candidates),
		zap.Int("tokens_in", result.TokensIn),
		zap.Int("tokens_out", result.TokensOut),
		zap.Float64("duration_secs", result.DurationSecs),
	)
	return nil
}

// newCrawler builds the crawl service client from the crawler config.
func newCrawler() crawl4ai.Client {
	opts := []crawl4ai.Option{
		crawl4ai.WithBaseURL(cfg.Crawler.BaseURL),
	}
	if cfg.Crawler.APIToken != "" {
		opts = append(opts, crawl4ai.WithAPIToken(cfg.Crawler.APIToken))
	}
	if cfg.Crawler.TimeoutSecs > 0 {
		opts = append(opts, crawl4ai.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Crawler.TimeoutSecs) * time.Second,
		}))
	}
	return crawl4ai.NewClient(opts...)
}

// loadJobDescription reads the JD file. A missing or empty file disables
// JD matching rather than failing the run.
func loadJobDescription(path string) string {
	if path == "" {
		return ""
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			zap.L().Info("no job description file, skipping JD matching",
				zap.String("path", path))
		} else {
			zap.L().Warn("job description unreadable, skipping JD matching",
				zap.String("path", path), zap.Error(err))
		}
		return ""
	}

	jd := strings.TrimSpace(string(data))
	if jd == "" {
		zap.L().Info("job description file is empty, skipping JD matching",
			zap.String("path", path))
	}
	return jd
}

// displayTop writes the head of the ranked batch as a table.
func displayTop(out io.Writer, candidates []model.Candidate, n int) {
	if n <= 0 || len(candidates) == 0 {
		return
	}
	if n > len(candidates) {
		n = len(candidates)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RANK\tNAME\tROLE\tCONF\tSCORE\tRECOMMENDATION")
	_, _ = fmt.Fprintln(w, "----\t----\t----\t----\t-----\t--------------")

	for i, c := range candidates[:n] {
		conf := ""
		if c.AIConfidenceScore != nil {
			conf = fmt.Sprintf("%.2f", *c.AIConfidenceScore)
		}
		score := ""
		if c.AIJDMatchScore != nil {
			score = fmt.Sprintf("%.0f", *c.AIJDMatchScore)
		}

		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			c.DisplayName(),
			c.AIMatchedRole,
			conf,
			score,
			c.AIRecommendation,
		)
	}
	_ = w.Flush()
}

// Run-row persistence is best-effort: a failed store write logs a warning
// and the scrape carries on. createRun returns "" when the row could not
// be created, which turns the later record calls into no-ops.

func createRun(ctx context.Context, st store.Store, target string) string {
	run, err := st.CreateRun(ctx, target)
	if err != nil {
		zap.L().Warn("store: create run failed", zap.Error(err))
		return ""
	}
	return run.ID
}

func recordStatus(ctx context.Context, st store.Store, runID string, status model.RunStatus) {
	if runID == "" {
		return
	}
	if err := st.UpdateRunStatus(ctx, runID, status); err != nil {
		zap.L().Warn("store: update run status failed",
			zap.String("run_id", runID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}
}

func recordFailure(ctx context.Context, st store.Store, runID string, cause error) {
	if runID == "" {
		return
	}
	if err := st.FailRun(ctx, runID, cause.Error()); err != nil {
		zap.L().Warn("store: fail run failed",
			zap.String("run_id", runID),
			zap.Error(err),
		)
	}
}

func recordResult(ctx context.Context, st store.Store, runID string, result *model.RunResult) {
	if runID == "" {
		return
	}
	if err := st.UpdateRunResult(ctx, runID, result); err != nil {
		zap.L().Warn("store: update run result failed",
			zap.String("run_id", runID),
			zap.Error(err),
		)
	}
}
