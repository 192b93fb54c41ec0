package pipeline

import (
	"go.uber.org/zap"

	"github.com/talentsift/scout-cli/internal/model"
)

// SeenSet accumulates candidate identifiers across the pages of one
// scrape session.
type SeenSet struct {
	ids map[string]struct{}
}

// NewSeenSet creates an empty identifier set.
func NewSeenSet() *SeenSet {
	return &SeenSet{ids: make(map[string]struct{})}
}

// Has reports whether the identifier was recorded before.
func (s *SeenSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Add records an identifier. Empty identifiers are never recorded.
func (s *SeenSet) Add(id string) {
	if id == "" {
		return
	}
	s.ids[id] = struct{}{}
}

// Len returns the number of recorded identifiers.
func (s *SeenSet) Len() int {
	return len(s.ids)
}

// Deduplicate filters out candidates whose identifier was already seen,
// preserving arrival order. Records without an identifier always pass;
// they carry no identity to deduplicate on.
func Deduplicate(candidates []model.Candidate, seen *SeenSet) []model.Candidate {
	unique := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		id := c.Identifier()
		if id == "" {
			unique = append(unique, c)
			continue
		}
		if seen.Has(id) {
			zap.L().Debug("dedup: skipping duplicate candidate",
				zap.String("identifier", id),
			)
			continue
		}
		seen.Add(id)
		unique = append(unique, c)
	}
	return unique
}
