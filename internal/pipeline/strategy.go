package pipeline

import (
	"strings"

	"github.com/talentsift/scout-cli/internal/config"
	"github.com/talentsift/scout-cli/internal/schema"
	"github.com/talentsift/scout-cli/pkg/crawl4ai"
)

const extractionInstruction = `Extract complete CV/resume information from the content. Parse the following data carefully:
1. Personal Information: name, job title, level, gender, nationality, DOB, address, years of experience, desired locations, job rank
2. Contact: phone, email, website, LinkedIn, GitHub
3. Skills: technical skills with categories (programming languages, frameworks, tools, etc.)
4. Languages: spoken languages with proficiency levels
5. Education: institution, degree, major, GPA, duration
6. Projects: project name, description, time period
7. Achievements and certifications
8. HR fields: hiring type, terminal status, rehire eligibility

If information is not available, leave the field empty or null. Be thorough and extract all available information.`

// ExtractionProvider renders the crawl service's provider string from the
// AI settings. The service expects the combined "provider/model" form.
func ExtractionProvider(cfg config.AIConfig) string {
	if strings.Contains(cfg.Provider, "/") || cfg.Model == "" {
		return cfg.Provider
	}
	return cfg.Provider + "/" + cfg.Model
}

// CVExtraction builds the LLM extraction strategy for candidate profiles:
// the embedded candidate schema plus a field-by-field instruction, run
// over the page markdown.
func CVExtraction(provider, apiToken string, temperature float64) *crawl4ai.ExtractionStrategy {
	return &crawl4ai.ExtractionStrategy{
		Provider:       provider,
		APIToken:       apiToken,
		Schema:         schema.Candidate(),
		ExtractionType: "schema",
		Instruction:    extractionInstruction,
		InputFormat:    "markdown",
		Temperature:    temperature,
	}
}
