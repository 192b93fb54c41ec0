package model

import "time"

// RunStatus represents the current state of a scrape run.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusScraping RunStatus = "scraping"
	RunStatusScoring  RunStatus = "scoring"
	RunStatusComplete RunStatus = "complete"
	RunStatusEmpty    RunStatus = "empty"
	RunStatusFailed   RunStatus = "failed"
)

// Run represents a single scrape-and-score session.
type Run struct {
	ID        string     `json:"id"`
	Source    string     `json:"source"`
	Status    RunStatus  `json:"status"`
	Error     string     `json:"error,omitempty"`
	Result    *RunResult `json:"result,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RunResult holds the final counters of a completed run.
type RunResult struct {
	Pages             int     `json:"pages"`
	Extracted         int     `json:"extracted"`
	Valid             int     `json:"valid"`
	Duplicates        int     `json:"duplicates"`
	Candidates        int     `json:"candidates"`
	ClassifyFallbacks int     `json:"classify_fallbacks,omitempty"`
	MatchFallbacks    int     `json:"match_fallbacks,omitempty"`
	JDMatched         bool    `json:"jd_matched"`
	TokensIn          int     `json:"tokens_in"`
	TokensOut         int     `json:"tokens_out"`
	DurationSecs      float64 `json:"duration_secs"`
	CSVFile           string  `json:"csv_file,omitempty"`
	JSONFile          string  `json:"json_file,omitempty"`
	XLSXFile          string  `json:"xlsx_file,omitempty"`
}
