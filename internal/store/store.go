// Package store persists scrape runs. Two drivers implement the same
// interface: an embedded SQLite database for single-user setups and
// PostgreSQL for shared deployments.
package store

import (
	"context"

	"github.com/talentsift/scout-cli/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Source string          `json:"source,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for scrape runs.
type Store interface {
	CreateRun(ctx context.Context, source string) (*model.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	// UpdateRunResult stores the final counters and marks the run complete.
	UpdateRunResult(ctx context.Context, runID string, result *model.RunResult) error
	// FailRun marks the run failed and records the failure message.
	FailRun(ctx context.Context, runID string, msg string) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
