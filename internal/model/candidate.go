package model

import "strings"

// PersonalInfo holds the identity section of a candidate CV.
type PersonalInfo struct {
	FullName             string   `json:"full_name,omitempty"`
	JobTitle             string   `json:"job_title,omitempty"`
	Level                string   `json:"level,omitempty"`
	Gender               string   `json:"gender,omitempty"`
	Nationality          string   `json:"nationality,omitempty"`
	DateOfBirth          string   `json:"date_of_birth,omitempty"`
	Address              string   `json:"address,omitempty"`
	YearsOfExperience    string   `json:"years_of_experience,omitempty"`
	DesiredWorkLocations []string `json:"desired_work_locations,omitempty"`
	JobRank              string   `json:"job_rank,omitempty"`
}

// IsZero reports whether no personal field was extracted.
func (p PersonalInfo) IsZero() bool {
	return p.FullName == "" && p.JobTitle == "" && p.Level == "" &&
		p.Gender == "" && p.Nationality == "" && p.DateOfBirth == "" &&
		p.Address == "" && p.YearsOfExperience == "" &&
		len(p.DesiredWorkLocations) == 0 && p.JobRank == ""
}

// ContactInfo holds the contact section of a candidate CV.
type ContactInfo struct {
	PhoneNumber string `json:"phone_number,omitempty"`
	Email       string `json:"email,omitempty"`
	Website     string `json:"website,omitempty"`
	LinkedIn    string `json:"linkedin,omitempty"`
	GitHub      string `json:"github,omitempty"`
}

// IsZero reports whether no contact field was extracted.
func (c ContactInfo) IsZero() bool {
	return c.PhoneNumber == "" && c.Email == "" && c.Website == "" &&
		c.LinkedIn == "" && c.GitHub == ""
}

// Skill is a single technical or soft skill.
type Skill struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
	Category    string `json:"category,omitempty"`
}

// Language is a spoken language with optional proficiency.
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency,omitempty"`
}

// Education is one education history entry.
type Education struct {
	InstitutionName string `json:"institution_name,omitempty"`
	Degree          string `json:"degree,omitempty"`
	Major           string `json:"major,omitempty"`
	GPA             string `json:"gpa,omitempty"`
	Duration        string `json:"duration,omitempty"`
}

// Project is one project experience entry.
type Project struct {
	ProjectName string `json:"project_name,omitempty"`
	Description string `json:"description,omitempty"`
	Time        string `json:"time,omitempty"`
}

// Achievement is an award or certification.
type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
}

// HRFields carries HR extension attributes. Booleans are tri-state:
// nil means the source never stated a value.
type HRFields struct {
	HiringType    string `json:"hiring_type,omitempty"`
	IsTerminal    *bool  `json:"is_terminal,omitempty"`
	CanRehire     *bool  `json:"can_rehire,omitempty"`
	IsFsofter     *bool  `json:"is_fsofter,omitempty"`
	IsUtilization *bool  `json:"is_utilization,omitempty"`
}

// IsZero reports whether no HR field was extracted.
func (h HRFields) IsZero() bool {
	return h.HiringType == "" && h.IsTerminal == nil && h.CanRehire == nil &&
		h.IsFsofter == nil && h.IsUtilization == nil
}

// Candidate is the complete CV record for one person, as extracted from a
// profile page, plus the analysis fields written during scoring.
type Candidate struct {
	PersonalInfo PersonalInfo `json:"personal_info"`
	ContactInfo  ContactInfo  `json:"contact_info"`

	Skills    []Skill    `json:"skills,omitempty"`
	Languages []Language `json:"languages,omitempty"`

	Education    []Education   `json:"education,omitempty"`
	Projects     []Project     `json:"projects,omitempty"`
	Achievements []Achievement `json:"achievements,omitempty"`

	HRFields HRFields `json:"hr_fields"`

	// Analysis fields, populated by the scoring phase. Score pointers
	// distinguish "never scored" from a literal zero.
	AIMatchedRole     string   `json:"ai_matched_role,omitempty"`
	AIConfidenceScore *float64 `json:"ai_confidence_score,omitempty"`
	AISeniority       string   `json:"ai_seniority,omitempty"`
	AIReasoning       string   `json:"ai_reasoning,omitempty"`
	AIKeySkills       []string `json:"ai_key_skills,omitempty"`
	AIJDMatchScore    *float64 `json:"ai_jd_match_score,omitempty"`
	AIMatchedSkills   []string `json:"ai_matched_skills,omitempty"`
	AIMissingSkills   []string `json:"ai_missing_skills,omitempty"`
	AIRecommendation  string   `json:"ai_recommendation,omitempty"`
	AIJDReasoning     string   `json:"ai_jd_reasoning,omitempty"`
}

// Identifier returns the candidate's dedup key: the lowercased email when
// present, otherwise the lowercased full name. A record with neither
// returns "" and carries no identity.
func (c *Candidate) Identifier() string {
	if c.ContactInfo.Email != "" {
		return strings.ToLower(c.ContactInfo.Email)
	}
	if c.PersonalInfo.FullName != "" {
		return strings.ToLower(c.PersonalInfo.FullName)
	}
	return ""
}

// DisplayName returns the full name, or "Unknown" for anonymous records.
func (c *Candidate) DisplayName() string {
	if c.PersonalInfo.FullName != "" {
		return c.PersonalInfo.FullName
	}
	return "Unknown"
}

// SortScore returns the ranking key. Records never scored sort as zero.
func (c *Candidate) SortScore() float64 {
	if c.AIJDMatchScore == nil {
		return 0
	}
	return *c.AIJDMatchScore
}

// SkillNames returns the names of all skills, skipping unnamed entries.
func (c *Candidate) SkillNames() []string {
	names := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		if s.Name != "" {
			names = append(names, s.Name)
		}
	}
	return names
}
