package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentsift/scout-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLite_CreateRun_And_GetRun(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "vietnamworks")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "vietnamworks", run.Source)
	assert.Equal(t, model.RunStatusQueued, run.Status)
	assert.Nil(t, run.Result)

	fetched, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, fetched.ID)
	assert.Equal(t, "vietnamworks", fetched.Source)
	assert.Equal(t, model.RunStatusQueued, fetched.Status)
	assert.Empty(t, fetched.Error)
	assert.Nil(t, fetched.Result)
	assert.WithinDuration(t, run.CreatedAt, fetched.CreatedAt, time.Second)
}

func TestSQLite_GetRun_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetRun(context.Background(), "nonexistent-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestSQLite_UpdateRunStatus(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "github")
	require.NoError(t, err)

	err = st.UpdateRunStatus(ctx, run.ID, model.RunStatusScraping)
	require.NoError(t, err)

	fetched, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusScraping, fetched.Status)
}

func TestSQLite_UpdateRunStatus_MultipleTransitions(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "github")
	require.NoError(t, err)

	for _, status := range []model.RunStatus{
		model.RunStatusScraping,
		model.RunStatusScoring,
		model.RunStatusComplete,
	} {
		require.NoError(t, st.UpdateRunStatus(ctx, run.ID, status))

		fetched, err := st.GetRun(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, status, fetched.Status)
	}
}

func TestSQLite_UpdateRunStatus_NonexistentRun(t *testing.T) {
	st := newTestSQLiteStore(t)

	err := st.UpdateRunStatus(context.Background(), "ghost-run", model.RunStatusComplete)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestSQLite_UpdateRunResult(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "vietnamworks")
	require.NoError(t, err)

	result := &model.RunResult{
		Pages:        3,
		Extracted:    18,
		Valid:        15,
		Duplicates:   2,
		Candidates:   13,
		JDMatched:    true,
		TokensIn:     5200,
		TokensOut:    1900,
		DurationSecs: 42.5,
		CSVFile:      "out/candidates.csv",
		JSONFile:     "out/candidates.json",
	}
	err = st.UpdateRunResult(ctx, run.ID, result)
	require.NoError(t, err)

	fetched, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, fetched.Status)
	require.NotNil(t, fetched.Result)
	assert.Equal(t, 3, fetched.Result.Pages)
	assert.Equal(t, 13, fetched.Result.Candidates)
	assert.Equal(t, 2, fetched.Result.Duplicates)
	assert.True(t, fetched.Result.JDMatched)
	assert.Equal(t, 5200, fetched.Result.TokensIn)
	assert.InDelta(t, 42.5, fetched.Result.DurationSecs, 0.001)
	assert.Equal(t, "out/candidates.csv", fetched.Result.CSVFile)
}

func TestSQLite_UpdateRunResult_NonexistentRun(t *testing.T) {
	st := newTestSQLiteStore(t)

	err := st.UpdateRunResult(context.Background(), "ghost-run", &model.RunResult{Pages: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestSQLite_FailRun(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "github")
	require.NoError(t, err)

	err = st.FailRun(ctx, run.ID, "crawl4ai unreachable")
	require.NoError(t, err)

	fetched, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, fetched.Status)
	assert.Equal(t, "crawl4ai unreachable", fetched.Error)
}

func TestSQLite_FailRun_NonexistentRun(t *testing.T) {
	st := newTestSQLiteStore(t)

	err := st.FailRun(context.Background(), "ghost-run", "boom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestSQLite_ListRuns(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.CreateRun(ctx, "vietnamworks")
	require.NoError(t, err)
	_, err = st.CreateRun(ctx, "github")
	require.NoError(t, err)

	runs, err := st.ListRuns(ctx, RunFilter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestSQLite_ListRuns_FilterByStatus(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "vietnamworks")
	require.NoError(t, err)

	err = st.UpdateRunStatus(ctx, run.ID, model.RunStatusComplete)
	require.NoError(t, err)

	// Create another run that stays queued.
	_, err = st.CreateRun(ctx, "github")
	require.NoError(t, err)

	runs, err := st.ListRuns(ctx, RunFilter{Status: model.RunStatusComplete, Limit: 10})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
}

func TestSQLite_ListRuns_FilterBySource(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.CreateRun(ctx, "vietnamworks")
	require.NoError(t, err)
	other, err := st.CreateRun(ctx, "github")
	require.NoError(t, err)

	runs, err := st.ListRuns(ctx, RunFilter{Source: "github", Limit: 10})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, other.ID, runs[0].ID)
}

func TestSQLite_ListRuns_OrdersNewestFirst(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for i, id := range []string{"run-old", "run-mid", "run-new"} {
		createdAt := now.Add(time.Duration(i-2) * time.Hour)
		_, err := st.db.ExecContext(ctx,
			`INSERT INTO runs (id, source, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			id, "github", "complete", createdAt, createdAt,
		)
		require.NoError(t, err)
	}

	runs, err := st.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "run-new", runs[0].ID)
	assert.Equal(t, "run-mid", runs[1].ID)
	assert.Equal(t, "run-old", runs[2].ID)
}

func TestSQLite_ListRuns_LimitAndOffset(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for i, id := range []string{"run-old", "run-mid", "run-new"} {
		createdAt := now.Add(time.Duration(i-2) * time.Hour)
		_, err := st.db.ExecContext(ctx,
			`INSERT INTO runs (id, source, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			id, "vietnamworks", "complete", createdAt, createdAt,
		)
		require.NoError(t, err)
	}

	runs, err := st.ListRuns(ctx, RunFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-mid", runs[0].ID)
}

func TestSQLite_Migrate_Idempotent(t *testing.T) {
	st := newTestSQLiteStore(t)

	// Migrate already ran in newTestSQLiteStore; a second call must not error.
	require.NoError(t, st.Migrate(context.Background()))
}
