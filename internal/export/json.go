package export

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/talentsift/scout-cli/internal/model"
)

// WriteJSON writes the full nested candidate records in ranked order.
// HTML escaping is off so names and reasoning text stay literal UTF-8.
func WriteJSON(path string, candidates []model.Candidate) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create json")
	}
	defer f.Close() //nolint:errcheck

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(candidates); err != nil {
		return eris.Wrap(err, "export: encode json")
	}
	return nil
}
