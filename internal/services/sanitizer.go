package services

import (
	"strconv"
	"strings"

	"github.com/abhishekagarwal777/resume-analyzer/internal/models"
)

const (
	notSpecified            = "Not specified"
	defaultImprovementAreas = "No specific improvement areas identified."

	summaryMaxLen          = 1000
	improvementAreasMaxLen = 2000
)

// Sanitize normalizes an arbitrary decoded AI payload into the fixed
// analysis schema. It is a total function: any input shape, including nil,
// yields a complete payload and never an error. The AI response format
// cannot be trusted, so nothing upstream of this step enters the typed
// domain.
func Sanitize(raw map[string]any) *models.AnalysisPayload {
	return &models.AnalysisPayload{
		Name:               optionalString(raw["name"]),
		Email:              optionalString(raw["email"]),
		Phone:              optionalString(raw["phone"]),
		LinkedinURL:        optionalString(raw["linkedin_url"]),
		PortfolioURL:       optionalString(raw["portfolio_url"]),
		Summary:            capOptional(optionalString(raw["summary"]), summaryMaxLen),
		WorkExperience:     sanitizeWorkExperience(raw["work_experience"]),
		Education:          sanitizeEducation(raw["education"]),
		Projects:           sanitizeProjects(raw["projects"]),
		Certifications:     sanitizeCertifications(raw["certifications"]),
		TechnicalSkills:    stringList(raw["technical_skills"]),
		SoftSkills:         stringList(raw["soft_skills"]),
		UpskillSuggestions: stringList(raw["upskill_suggestions"]),
		ResumeRating:       clampRating(raw["resume_rating"]),
		ImprovementAreas:   capString(stringOr(raw["improvement_areas"], defaultImprovementAreas), improvementAreasMaxLen),
	}
}

func sanitizeWorkExperience(v any) []models.WorkExperience {
	out := []models.WorkExperience{}
	for _, item := range objectList(v) {
		out = append(out, models.WorkExperience{
			Role:        stringOr(item["role"], notSpecified),
			Company:     stringOr(item["company"], notSpecified),
			Duration:    stringOr(item["duration"], notSpecified),
			Description: descriptionList(item["description"]),
		})
	}
	return out
}

func sanitizeEducation(v any) []models.Education {
	out := []models.Education{}
	for _, item := range objectList(v) {
		out = append(out, models.Education{
			Degree:         stringOr(item["degree"], notSpecified),
			Institution:    stringOr(item["institution"], notSpecified),
			GraduationYear: stringOr(item["graduation_year"], notSpecified),
		})
	}
	return out
}

func sanitizeProjects(v any) []models.Project {
	out := []models.Project{}
	for _, item := range objectList(v) {
		out = append(out, models.Project{
			Name:         stringOr(item["name"], notSpecified),
			Description:  stringOr(item["description"], notSpecified),
			Technologies: stringList(item["technologies"]),
		})
	}
	return out
}

func sanitizeCertifications(v any) []models.Certification {
	out := []models.Certification{}
	for _, item := range objectList(v) {
		out = append(out, models.Certification{
			Name:   stringOr(item["name"], notSpecified),
			Issuer: stringOr(item["issuer"], notSpecified),
			Year:   stringOr(item["year"], notSpecified),
		})
	}
	return out
}

// objectList keeps only the object-shaped elements of a would-be list.
func objectList(v any) []map[string]any {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, el := range list {
		if m, ok := el.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// stringList coerces a value into a list of non-empty strings; anything
// that is not a list becomes an empty list.
func stringList(v any) []string {
	out := []string{}
	list, ok := v.([]any)
	if !ok {
		return out
	}
	for _, el := range list {
		if s, ok := el.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// descriptionList applies the work-experience description rule: a list of
// strings passes through, a scalar string is wrapped in a one-element list,
// anything else becomes a one-element placeholder list.
func descriptionList(v any) []string {
	if list, ok := v.([]any); ok {
		out := stringList(list)
		if len(out) > 0 {
			return out
		}
		return []string{notSpecified}
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return []string{s}
	}
	return []string{notSpecified}
}

func optionalString(v any) *string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return &s
	}
	return nil
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return def
}

// clampRating parses the rating as an integer (float values truncate) and
// clamps it into [1,10]. Any parse failure yields 1.
func clampRating(v any) int {
	var rating int
	switch n := v.(type) {
	case float64:
		rating = int(n)
	case int:
		rating = n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 1
		}
		rating = int(f)
	default:
		return 1
	}

	if rating < 1 {
		return 1
	}
	if rating > 10 {
		return 10
	}
	return rating
}

// capString truncates s to max characters, marking the cut with an ellipsis.
func capString(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func capOptional(s *string, max int) *string {
	if s == nil {
		return nil
	}
	capped := capString(*s, max)
	return &capped
}
