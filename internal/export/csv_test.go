package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentsift/scout-cli/internal/model"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "candidates.csv")
	batch := []model.Candidate{rankedCandidate(), minimalCandidate()}

	require.NoError(t, WriteCSV(path, batch))
	records := readCSV(t, path)

	require.Len(t, records, 3)
	assert.Equal(t, flatColumns, records[0])

	cell := func(row []string, col string) string {
		for i, name := range records[0] {
			if name == col {
				return row[i]
			}
		}
		t.Fatalf("column %s not in header", col)
		return ""
	}

	// Rows keep ranked order; the top candidate comes first.
	assert.Equal(t, "Nguyễn Thị Linh", cell(records[1], "full_name"))
	assert.Equal(t, "Go, Rust, PostgreSQL", cell(records[1], "skills"))
	assert.Equal(t, "85", cell(records[1], "ai_jd_match_score"))

	// A sparse record fills its missing columns with empty cells.
	assert.Equal(t, "An Nguyen", cell(records[2], "full_name"))
	assert.Equal(t, "", cell(records[2], "skills"))
	assert.Equal(t, "", cell(records[2], "ai_jd_match_score"))
	assert.Equal(t, "0", cell(records[2], "projects_count"))
}

func TestWriteCSVHeaderStability(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	full := filepath.Join(dir, "full.csv")
	sparse := filepath.Join(dir, "sparse.csv")

	require.NoError(t, WriteCSV(full, []model.Candidate{rankedCandidate()}))
	require.NoError(t, WriteCSV(sparse, []model.Candidate{minimalCandidate()}))

	// Column set and order do not depend on which fields the batch
	// happened to populate.
	assert.Equal(t, readCSV(t, full)[0], readCSV(t, sparse)[0])
}

func TestWriteCSVCreateFailure(t *testing.T) {
	t.Parallel()

	err := WriteCSV(filepath.Join(t.TempDir(), "no", "such", "dir.csv"), []model.Candidate{rankedCandidate()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create csv")
}
