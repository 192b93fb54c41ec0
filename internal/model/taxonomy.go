package model

// Roles are the classification targets for candidate roles. The final
// entry is the catch-all used when classification fails or nothing fits.
var Roles = []string{
	"Software Engineer",
	"Frontend Developer",
	"Backend Developer",
	"Full Stack Developer",
	"DevOps Engineer",
	"Data Engineer",
	"Data Scientist",
	"ML Engineer",
	"Mobile Developer",
	"QA Engineer",
	"Product Manager",
	"Technical Lead",
	"Architect",
	"Other",
}

// SeniorityLevels are the recognized seniority classifications.
var SeniorityLevels = []string{
	"Intern",
	"Fresher",
	"Junior",
	"Mid-level",
	"Senior",
	"Lead",
	"Principal",
	"Staff",
}

// SkillCategories groups skills for extraction and reporting.
var SkillCategories = []string{
	"programming_languages",
	"frameworks",
	"databases",
	"cloud_platforms",
	"tools",
	"soft_skills",
}

const (
	// RoleOther is the fallback role when classification cannot decide.
	RoleOther = "Other"
	// SeniorityUnknown is the fallback seniority when classification fails.
	SeniorityUnknown = "Unknown"
)

// RequiredSections is the default validation policy: CV sections that must
// be present and non-empty for a record to survive ingestion.
var RequiredSections = []string{
	"personal_info",
	"contact_info",
}
