package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentsift/scout-cli/internal/model"
)

var runColumns = []string{"id", "source", "status", "error", "result", "created_at", "updated_at"}

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewPostgresWithPool(mock), mock
}

func TestPostgresStore_CreateRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO runs \(id, source, status, created_at, updated_at\)`).
		WithArgs(pgxmock.AnyArg(), "vietnamworks", "queued", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	run, err := s.CreateRun(context.Background(), "vietnamworks")
	require.NoError(t, err)
	assert.Len(t, run.ID, 36)
	assert.Equal(t, "vietnamworks", run.Source)
	assert.Equal(t, model.RunStatusQueued, run.Status)
	assert.False(t, run.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateRunStatus(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE runs SET status = \$1, updated_at = \$2 WHERE id = \$3`).
		WithArgs("scraping", pgxmock.AnyArg(), "run-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.UpdateRunStatus(context.Background(), "run-1", model.RunStatusScraping)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateRunStatus_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE runs SET status = \$1, updated_at = \$2 WHERE id = \$3`).
		WithArgs("complete", pgxmock.AnyArg(), "ghost-run").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdateRunStatus(context.Background(), "ghost-run", model.RunStatusComplete)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateRunResult(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE runs SET result = \$1, status = \$2, updated_at = \$3 WHERE id = \$4`).
		WithArgs(pgxmock.AnyArg(), "complete", pgxmock.AnyArg(), "run-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.UpdateRunResult(context.Background(), "run-1", &model.RunResult{
		Pages:      3,
		Extracted:  18,
		Valid:      15,
		Duplicates: 2,
		Candidates: 13,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FailRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE runs SET status = \$1, error = \$2, updated_at = \$3 WHERE id = \$4`).
		WithArgs("failed", "crawl4ai unreachable", pgxmock.AnyArg(), "run-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.FailRun(context.Background(), "run-1", "crawl4ai unreachable")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FailRun_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE runs SET status = \$1, error = \$2, updated_at = \$3 WHERE id = \$4`).
		WithArgs("failed", "boom", pgxmock.AnyArg(), "ghost-run").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.FailRun(context.Background(), "ghost-run", "boom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	now := time.Now().UTC()
	resultJSON := []byte(`{"pages":3,"extracted":18,"valid":15,"duplicates":2,"candidates":13,"jd_matched":true,"tokens_in":5200,"tokens_out":1900,"duration_secs":42.5,"csv_file":"out/candidates.csv"}`)

	mock.ExpectQuery(`SELECT id, source, status, error, result, created_at, updated_at FROM runs WHERE id = \$1`).
		WithArgs("run-7").
		WillReturnRows(pgxmock.NewRows(runColumns).
			AddRow("run-7", "vietnamworks", model.RunStatusComplete, "", &resultJSON, now, now))

	run, err := s.GetRun(context.Background(), "run-7")
	require.NoError(t, err)
	assert.Equal(t, "run-7", run.ID)
	assert.Equal(t, "vietnamworks", run.Source)
	assert.Equal(t, model.RunStatusComplete, run.Status)
	require.NotNil(t, run.Result)
	assert.Equal(t, 3, run.Result.Pages)
	assert.Equal(t, 13, run.Result.Candidates)
	assert.True(t, run.Result.JDMatched)
	assert.InDelta(t, 42.5, run.Result.DurationSecs, 0.001)
	assert.Equal(t, "out/candidates.csv", run.Result.CSVFile)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetRun_NullResult(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, source, status, error, result, created_at, updated_at FROM runs WHERE id = \$1`).
		WithArgs("run-2").
		WillReturnRows(pgxmock.NewRows(runColumns).
			AddRow("run-2", "github", model.RunStatusScraping, "", nil, now, now))

	run, err := s.GetRun(context.Background(), "run-2")
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusScraping, run.Status)
	assert.Nil(t, run.Result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetRun_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, source, status, error, result, created_at, updated_at FROM runs WHERE id = \$1`).
		WithArgs("nonexistent-run").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetRun(context.Background(), "nonexistent-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListRuns_Defaults(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	now := time.Now().UTC()

	mock.ExpectQuery(`FROM runs WHERE true ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(100).
		WillReturnRows(pgxmock.NewRows(runColumns).
			AddRow("run-b", "github", model.RunStatusComplete, "", nil, now, now).
			AddRow("run-a", "vietnamworks", model.RunStatusFailed, "probe timeout", nil, now.Add(-time.Hour), now.Add(-time.Hour)))

	runs, err := s.ListRuns(context.Background(), RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-b", runs[0].ID)
	assert.Equal(t, "probe timeout", runs[1].Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListRuns_Filtered(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	now := time.Now().UTC()

	mock.ExpectQuery(`FROM runs WHERE true AND status = \$1 AND source = \$2 ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs("complete", "vietnamworks", 10, 20).
		WillReturnRows(pgxmock.NewRows(runColumns).
			AddRow("run-c", "vietnamworks", model.RunStatusComplete, "", nil, now, now))

	runs, err := s.ListRuns(context.Background(), RunFilter{
		Status: model.RunStatusComplete,
		Source: "vietnamworks",
		Limit:  10,
		Offset: 20,
	})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-c", runs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
