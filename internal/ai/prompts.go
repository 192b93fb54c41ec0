package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/talentsift/scout-cli/internal/model"
)

const classifySystemPrompt = `You are an expert technical recruiter and HR analyst.`

const classifyUserPrompt = `Analyze this candidate's profile and classify their role and seniority:

Candidate Data:
%s

Available Roles: %s
Available Seniority Levels: %s

Return a JSON object with:
- matched_role: best matching role from the list
- confidence_score: float between 0-1
- seniority_level: most appropriate level
- reasoning: brief explanation (1-2 sentences)
- key_skills: array of top 5 most relevant skills

Respond ONLY with valid JSON.`

const matchSystemPrompt = `You are an expert technical recruiter analyzing candidate-job fit.`

const matchUserPrompt = `Compare this candidate against the job description and provide a matching analysis:

Job Description:
%s

Candidate Profile:
%s

Analyze and return a JSON object with:
- match_score: integer 0-100 indicating overall fit
- matched_skills: array of skills that match JD requirements
- missing_skills: array of required skills the candidate lacks
- strengths: array of 3-5 candidate strengths for this role
- concerns: array of 2-3 potential concerns or gaps
- recommendation: one of "strong_yes", "yes", "maybe", "no"
- reasoning: 2-3 sentences explaining the recommendation

Respond ONLY with valid JSON.`

// classifyProfile is the trimmed candidate view sent for role classification.
// Keeping the payload small holds prompt tokens down on large batches.
type classifyProfile struct {
	Name            string   `json:"name"`
	JobTitle        string   `json:"job_title"`
	YearsExperience string   `json:"years_experience"`
	Skills          []string `json:"skills"`
	Education       []string `json:"education"`
	Projects        []string `json:"projects"`
}

// matchProfile is the trimmed candidate view sent for job description matching.
type matchProfile struct {
	Name       string   `json:"name"`
	Experience string   `json:"experience"`
	Skills     []string `json:"skills"`
	Education  []string `json:"education"`
	Projects   []string `json:"projects"`
}

func buildClassifyPrompt(c model.Candidate) (string, error) {
	profile := classifyProfile{
		Name:            c.DisplayName(),
		JobTitle:        c.PersonalInfo.JobTitle,
		YearsExperience: c.PersonalInfo.YearsOfExperience,
		Skills:          c.SkillNames(),
		Education:       educationMajors(c.Education),
		Projects:        projectNames(c.Projects),
	}
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "ai: marshal classify profile")
	}
	return fmt.Sprintf(classifyUserPrompt,
		string(data),
		strings.Join(model.Roles, ", "),
		strings.Join(model.SeniorityLevels, ", "),
	), nil
}

func buildMatchPrompt(c model.Candidate, jobDescription string) (string, error) {
	profile := matchProfile{
		Name:       c.DisplayName(),
		Experience: c.PersonalInfo.YearsOfExperience,
		Skills:     c.SkillNames(),
		Education:  educationDegrees(c.Education),
		Projects:   projectDescriptions(c.Projects),
	}
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "ai: marshal match profile")
	}
	return fmt.Sprintf(matchUserPrompt, jobDescription, string(data)), nil
}

func educationMajors(entries []model.Education) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Major == "" {
			continue
		}
		out = append(out, e.Major)
	}
	return out
}

func educationDegrees(entries []model.Education) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Degree == "" && e.Major == "" {
			continue
		}
		out = append(out, fmt.Sprintf("%s in %s", e.Degree, e.Major))
	}
	return out
}

func projectNames(projects []model.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		if p.ProjectName == "" {
			continue
		}
		out = append(out, p.ProjectName)
	}
	return out
}

func projectDescriptions(projects []model.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		if p.Description == "" {
			continue
		}
		out = append(out, p.Description)
	}
	return out
}
