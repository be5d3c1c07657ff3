package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnalysisPrompt creates the single deterministic prompt for resume
// analysis. The schema description must stay in sync with the sanitizer.
func (pb *PromptBuilder) BuildAnalysisPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert technical recruiter and career coach analyzing a resume.

RESUME TEXT:
%s

Extract the candidate's information and assess the resume quality.

Return your response as JSON only, no prose, no markdown, matching exactly this schema:
{
  "name": "<full name or null>",
  "email": "<email address or null>",
  "phone": "<phone number or null>",
  "linkedin_url": "<LinkedIn URL or null>",
  "portfolio_url": "<portfolio/website URL or null>",
  "summary": "<2-4 sentence professional summary of the candidate>",
  "work_experience": [{"role": "<job title>", "company": "<company>", "duration": "<period>", "description": ["<achievement or responsibility>"]}],
  "education": [{"degree": "<degree>", "institution": "<school>", "graduation_year": "<year>"}],
  "projects": [{"name": "<project name>", "description": "<what it does>", "technologies": ["<tech>"]}],
  "certifications": [{"name": "<certification>", "issuer": "<issuing body>", "year": "<year>"}],
  "technical_skills": ["<skill>"],
  "soft_skills": ["<skill>"],
  "resume_rating": <integer 1-10 rating the overall resume quality>,
  "improvement_areas": "<concrete suggestions to improve the resume>",
  "upskill_suggestions": ["<skill or technology worth learning next>"]
}

Use null for contact fields that are not present in the resume. Use empty arrays for sections the resume does not contain. Be objective and specific.`,
		resumeText)
}
