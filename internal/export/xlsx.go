package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/talentsift/scout-cli/internal/model"
)

// WriteXLSX writes the flattened rows to a single "Candidates" sheet with
// the same column set and ordering as the CSV export.
func WriteXLSX(path string, candidates []model.Candidate) error {
	rows := make([]map[string]string, len(candidates))
	for i := range candidates {
		rows[i] = Flatten(&candidates[i])
	}
	header := columnUnion(rows)

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Candidates")
	if err != nil {
		return eris.Wrap(err, "export: add xlsx sheet")
	}

	headerRow := sheet.AddRow()
	for _, col := range header {
		headerRow.AddCell().SetString(col)
	}

	for _, row := range rows {
		r := sheet.AddRow()
		for _, col := range header {
			r.AddCell().SetString(row[col])
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save xlsx")
	}
	return nil
}
