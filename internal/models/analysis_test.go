package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestToRecordRoundTripsListFields(t *testing.T) {
	payload := &AnalysisPayload{
		Name:  strPtr("Jane Doe"),
		Email: strPtr("jane@example.com"),
		WorkExperience: []WorkExperience{
			{Role: "Engineer", Company: "Acme", Duration: "2019-2023", Description: []string{"Built APIs", "Led migrations"}},
			{Role: "Intern", Company: "Not specified", Duration: "Not specified", Description: []string{"Not specified"}},
		},
		Education: []Education{
			{Degree: "BSc", Institution: "State University", GraduationYear: "2019"},
		},
		Projects: []Project{
			{Name: "analyzer", Description: "CLI tool", Technologies: []string{"Go", "Postgres"}},
		},
		Certifications:     []Certification{{Name: "CKA", Issuer: "CNCF", Year: "2022"}},
		TechnicalSkills:    []string{"Go", "SQL"},
		SoftSkills:         []string{"Communication"},
		UpskillSuggestions: []string{"Kubernetes"},
		ResumeRating:       8,
		ImprovementAreas:   "Add measurable outcomes.",
	}

	rec := payload.ToRecord("resume.pdf")
	require.Equal(t, "resume.pdf", rec.FileName)

	assert.Equal(t, payload.WorkExperience, rec.WorkExperienceItems())
	assert.Equal(t, payload.Education, rec.EducationItems())
	assert.Equal(t, payload.Projects, rec.ProjectItems())
	assert.Equal(t, payload.Certifications, rec.CertificationItems())
	assert.Equal(t, payload.TechnicalSkills, rec.TechnicalSkillItems())
	assert.Equal(t, payload.SoftSkills, rec.SoftSkillItems())
	assert.Equal(t, payload.UpskillSuggestions, rec.UpskillSuggestionItems())
}

func TestToRecordEncodesNilListsAsEmptyArrays(t *testing.T) {
	rec := (&AnalysisPayload{ResumeRating: 1}).ToRecord("empty.pdf")

	assert.Equal(t, "[]", string(rec.WorkExperience))
	assert.Equal(t, "[]", string(rec.TechnicalSkills))
	assert.Empty(t, rec.WorkExperienceItems())
	assert.Empty(t, rec.TechnicalSkillItems())
}

func TestDecodeToleratesNullAndGarbage(t *testing.T) {
	rec := &ResumeAnalysis{}
	assert.Equal(t, []Education{}, rec.EducationItems())

	rec.Education = []byte("null")
	assert.Equal(t, []Education{}, rec.EducationItems())

	rec.Education = []byte(`{"not":"a list"}`)
	assert.Equal(t, []Education{}, rec.EducationItems())
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short", 100))

	long := strings.Repeat("x", 150)
	got := Preview(long, 100)
	assert.Len(t, got, 100)
}

func TestNewSummaryTruncatesImprovementAreas(t *testing.T) {
	rec := &ResumeAnalysis{
		ID:               7,
		FileName:         "cv.pdf",
		ResumeRating:     6,
		ImprovementAreas: strings.Repeat("improve ", 30), // 240 chars
	}

	s := NewSummary(rec)
	assert.Equal(t, uint(7), s.ID)
	assert.Equal(t, "cv.pdf", s.FileName)
	assert.Len(t, s.ImprovementAreasPreview, 100)
}
