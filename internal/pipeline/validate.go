package pipeline

import (
	"go.uber.org/zap"

	"github.com/talentsift/scout-cli/internal/model"
)

// Validate reports whether a candidate passes the ingestion policy: every
// required section non-empty, and at least one identifier. An unknown
// section name in the policy fails the record.
func Validate(c *model.Candidate, required []string) bool {
	for _, section := range required {
		switch section {
		case "personal_info":
			if c.PersonalInfo.IsZero() {
				return false
			}
		case "contact_info":
			if c.ContactInfo.IsZero() {
				return false
			}
		case "skills":
			if len(c.Skills) == 0 {
				return false
			}
		case "languages":
			if len(c.Languages) == 0 {
				return false
			}
		case "education":
			if len(c.Education) == 0 {
				return false
			}
		case "projects":
			if len(c.Projects) == 0 {
				return false
			}
		case "achievements":
			if len(c.Achievements) == 0 {
				return false
			}
		case "hr_fields":
			if c.HRFields.IsZero() {
				return false
			}
		default:
			zap.L().Warn("validate: unknown required section",
				zap.String("section", section),
			)
			return false
		}
	}
	return c.Identifier() != ""
}
