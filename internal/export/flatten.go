// Package export writes ranked candidates to CSV, JSON, and XLSX files.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/talentsift/scout-cli/internal/model"
)

// summaryLimit caps how many project names and achievement titles make it
// into the flattened summary cells.
const summaryLimit = 3

// Flatten renders one candidate as the flat column set shared by the CSV
// and XLSX exports. Counts and scores become strings; nil score pointers
// and absent sections render as empty cells.
func Flatten(c *model.Candidate) map[string]string {
	flat := make(map[string]string, 35)

	p := c.PersonalInfo
	flat["full_name"] = p.FullName
	flat["job_title"] = p.JobTitle
	flat["level"] = p.Level
	flat["gender"] = p.Gender
	flat["nationality"] = p.Nationality
	flat["date_of_birth"] = p.DateOfBirth
	flat["address"] = p.Address
	flat["years_of_experience"] = p.YearsOfExperience
	flat["desired_work_locations"] = strings.Join(p.DesiredWorkLocations, ", ")
	flat["job_rank"] = p.JobRank

	ct := c.ContactInfo
	flat["phone_number"] = ct.PhoneNumber
	flat["email"] = ct.Email
	flat["website"] = ct.Website
	flat["linkedin"] = ct.LinkedIn
	flat["github"] = ct.GitHub

	flat["skills"] = strings.Join(c.SkillNames(), ", ")
	flat["skill_categories"] = strings.Join(skillCategories(c.Skills), ", ")
	flat["languages"] = strings.Join(languageSummaries(c.Languages), ", ")

	flat["education"], flat["gpa"] = educationSummary(c.Education)

	flat["projects_count"] = strconv.Itoa(len(c.Projects))
	flat["projects_summary"] = strings.Join(projectNames(c.Projects), " | ")
	flat["achievements_count"] = strconv.Itoa(len(c.Achievements))
	flat["achievements"] = strings.Join(achievementTitles(c.Achievements), " | ")

	hr := c.HRFields
	flat["hiring_type"] = hr.HiringType
	flat["is_terminal"] = formatBool(hr.IsTerminal)
	flat["can_rehire"] = formatBool(hr.CanRehire)
	flat["is_fsofter"] = formatBool(hr.IsFsofter)
	flat["is_utilization"] = formatBool(hr.IsUtilization)

	flat["ai_matched_role"] = c.AIMatchedRole
	flat["ai_confidence_score"] = formatScore(c.AIConfidenceScore)
	flat["ai_jd_match_score"] = formatScore(c.AIJDMatchScore)
	flat["ai_seniority"] = c.AISeniority
	flat["ai_recommendation"] = c.AIRecommendation
	flat["ai_reasoning"] = c.AIReasoning

	return flat
}

// skillCategories returns the unique non-empty categories in first-seen
// order, so repeated exports of the same batch produce identical cells.
func skillCategories(skills []model.Skill) []string {
	seen := make(map[string]struct{}, len(skills))
	cats := make([]string, 0, len(skills))
	for _, s := range skills {
		if s.Category == "" {
			continue
		}
		if _, ok := seen[s.Category]; ok {
			continue
		}
		seen[s.Category] = struct{}{}
		cats = append(cats, s.Category)
	}
	return cats
}

func languageSummaries(langs []model.Language) []string {
	out := make([]string, 0, len(langs))
	for _, l := range langs {
		out = append(out, fmt.Sprintf("%s (%s)", l.Language, l.Proficiency))
	}
	return out
}

// educationSummary renders the first education entry; later entries are
// dropped from the flat view but survive in the JSON export.
func educationSummary(entries []model.Education) (summary, gpa string) {
	if len(entries) == 0 {
		return "", ""
	}
	e := entries[0]
	return fmt.Sprintf("%s in %s - %s", e.Degree, e.Major, e.InstitutionName), e.GPA
}

func projectNames(projects []model.Project) []string {
	if len(projects) > summaryLimit {
		projects = projects[:summaryLimit]
	}
	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.ProjectName)
	}
	return names
}

func achievementTitles(achievements []model.Achievement) []string {
	if len(achievements) > summaryLimit {
		achievements = achievements[:summaryLimit]
	}
	titles := make([]string, 0, len(achievements))
	for _, a := range achievements {
		titles = append(titles, a.Title)
	}
	return titles
}

// formatBool renders a tri-state HR flag; nil means the source never
// stated a value.
func formatBool(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

// formatScore renders a score pointer in shortest decimal form.
func formatScore(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'g', -1, 64)
}
