package export

import (
	"encoding/csv"
	"os"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/talentsift/scout-cli/internal/model"
)

// WriteCSV writes one flattened row per candidate, preserving ranked
// order. The header is the union of every row's keys sorted
// alphabetically, so partial records never shift columns between runs.
func WriteCSV(path string, candidates []model.Candidate) error {
	rows := make([]map[string]string, len(candidates))
	for i := range candidates {
		rows[i] = Flatten(&candidates[i])
	}
	header := columnUnion(rows)

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create csv")
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}

	record := make([]string, len(header))
	for _, row := range rows {
		for i, col := range header {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return nil
}

// columnUnion collects every key appearing in any row, sorted.
func columnUnion(rows []map[string]string) []string {
	set := make(map[string]struct{})
	for _, row := range rows {
		for k := range row {
			set[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(set))
	for k := range set {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}
