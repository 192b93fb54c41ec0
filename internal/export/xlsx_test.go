package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/talentsift/scout-cli/internal/model"
)

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "candidates.xlsx")
	batch := []model.Candidate{rankedCandidate(), minimalCandidate()}

	require.NoError(t, WriteXLSX(path, batch))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	sheet, ok := f.Sheet["Candidates"]
	require.True(t, ok, "expected a Candidates sheet")
	require.Len(t, sheet.Rows, 3)

	header := make([]string, len(sheet.Rows[0].Cells))
	for i, cell := range sheet.Rows[0].Cells {
		header[i] = cell.String()
	}
	assert.Equal(t, flatColumns, header)

	cell := func(rowIdx int, col string) string {
		for i, name := range header {
			if name == col {
				return sheet.Rows[rowIdx].Cells[i].String()
			}
		}
		t.Fatalf("column %s not in header", col)
		return ""
	}

	assert.Equal(t, "Nguyễn Thị Linh", cell(1, "full_name"))
	assert.Equal(t, "Programming Languages, Databases", cell(1, "skill_categories"))
	assert.Equal(t, "An Nguyen", cell(2, "full_name"))
	assert.Equal(t, "0", cell(2, "achievements_count"))
}

func TestWriteXLSXSaveFailure(t *testing.T) {
	t.Parallel()

	err := WriteXLSX(filepath.Join(t.TempDir(), "no", "such", "dir.xlsx"), []model.Candidate{rankedCandidate()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save xlsx")
}
