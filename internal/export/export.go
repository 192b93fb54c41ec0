package export

import (
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/talentsift/scout-cli/internal/model"
)

// Files lists the output targets for one run. An empty path disables that
// format.
type Files struct {
	CSV  string
	JSON string
	XLSX string
}

// WriteAll writes every enabled output format. An empty batch writes no
// files at all. Writers run concurrently; all of them are attempted and
// the first failure is returned.
func WriteAll(files Files, candidates []model.Candidate) error {
	if len(candidates) == 0 {
		zap.L().Info("export: no candidates to save")
		return nil
	}

	var g errgroup.Group

	if files.CSV != "" {
		g.Go(func() error {
			if err := WriteCSV(files.CSV, candidates); err != nil {
				return err
			}
			zap.L().Info("export: wrote csv",
				zap.String("path", files.CSV),
				zap.Int("candidates", len(candidates)),
			)
			return nil
		})
	}

	if files.JSON != "" {
		g.Go(func() error {
			if err := WriteJSON(files.JSON, candidates); err != nil {
				return err
			}
			zap.L().Info("export: wrote json",
				zap.String("path", files.JSON),
				zap.Int("candidates", len(candidates)),
			)
			return nil
		})
	}

	if files.XLSX != "" {
		g.Go(func() error {
			if err := WriteXLSX(files.XLSX, candidates); err != nil {
				return err
			}
			zap.L().Info("export: wrote xlsx",
				zap.String("path", files.XLSX),
				zap.Int("candidates", len(candidates)),
			)
			return nil
		})
	}

	return g.Wait()
}
