package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// WorkExperience, Education, Project and Certification are the typed items
// of the structured list columns. Every field is already defaulted by the
// sanitizer before a record reaches storage.
type WorkExperience struct {
	Role        string   `json:"role"`
	Company     string   `json:"company"`
	Duration    string   `json:"duration"`
	Description []string `json:"description"`
}

type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	GraduationYear string `json:"graduation_year"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
}

// ResumeAnalysis is the stored result of processing one uploaded resume.
type ResumeAnalysis struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FileName   string    `gorm:"type:text;not null" json:"file_name"`
	UploadedAt time.Time `gorm:"type:timestamptz;default:now()" json:"uploaded_at"`

	Name         *string `gorm:"type:text" json:"name"`
	Email        *string `gorm:"type:text" json:"email"`
	Phone        *string `gorm:"type:text" json:"phone"`
	LinkedinURL  *string `gorm:"type:text" json:"linkedin_url"`
	PortfolioURL *string `gorm:"type:text" json:"portfolio_url"`
	Summary      *string `gorm:"type:text" json:"summary"`

	WorkExperience     datatypes.JSON `gorm:"type:jsonb" json:"work_experience"`
	Education          datatypes.JSON `gorm:"type:jsonb" json:"education"`
	Projects           datatypes.JSON `gorm:"type:jsonb" json:"projects"`
	Certifications     datatypes.JSON `gorm:"type:jsonb" json:"certifications"`
	TechnicalSkills    datatypes.JSON `gorm:"type:jsonb" json:"technical_skills"`
	SoftSkills         datatypes.JSON `gorm:"type:jsonb" json:"soft_skills"`
	UpskillSuggestions datatypes.JSON `gorm:"type:jsonb" json:"upskill_suggestions"`

	ResumeRating     int    `gorm:"check:resume_rating >= 1 AND resume_rating <= 10" json:"resume_rating"`
	ImprovementAreas string `gorm:"type:text" json:"improvement_areas"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP;autoUpdateTime" json:"updated_at"`
}

func (ResumeAnalysis) TableName() string {
	return "resume_analyses"
}

// Typed accessors decode the JSON columns back to native lists. A missing
// or null column decodes to an empty list, never an error.
func (r *ResumeAnalysis) WorkExperienceItems() []WorkExperience {
	return decodeList[WorkExperience](r.WorkExperience)
}

func (r *ResumeAnalysis) EducationItems() []Education {
	return decodeList[Education](r.Education)
}

func (r *ResumeAnalysis) ProjectItems() []Project {
	return decodeList[Project](r.Projects)
}

func (r *ResumeAnalysis) CertificationItems() []Certification {
	return decodeList[Certification](r.Certifications)
}

func (r *ResumeAnalysis) TechnicalSkillItems() []string {
	return decodeList[string](r.TechnicalSkills)
}

func (r *ResumeAnalysis) SoftSkillItems() []string {
	return decodeList[string](r.SoftSkills)
}

func (r *ResumeAnalysis) UpskillSuggestionItems() []string {
	return decodeList[string](r.UpskillSuggestions)
}

func decodeList[T any](raw datatypes.JSON) []T {
	items := []T{}
	if len(raw) == 0 {
		return items
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return []T{}
	}
	return items
}

// AnalysisPayload is the sanitizer output: a complete analysis without the
// storage-assigned id and timestamps.
type AnalysisPayload struct {
	Name               *string          `json:"name"`
	Email              *string          `json:"email"`
	Phone              *string          `json:"phone"`
	LinkedinURL        *string          `json:"linkedin_url"`
	PortfolioURL       *string          `json:"portfolio_url"`
	Summary            *string          `json:"summary"`
	WorkExperience     []WorkExperience `json:"work_experience"`
	Education          []Education      `json:"education"`
	Projects           []Project        `json:"projects"`
	Certifications     []Certification  `json:"certifications"`
	TechnicalSkills    []string         `json:"technical_skills"`
	SoftSkills         []string         `json:"soft_skills"`
	UpskillSuggestions []string         `json:"upskill_suggestions"`
	ResumeRating       int              `json:"resume_rating"`
	ImprovementAreas   string           `json:"improvement_areas"`
}

// ToRecord converts a sanitized payload into a storable record, encoding
// the list fields as JSON columns.
func (p *AnalysisPayload) ToRecord(fileName string) *ResumeAnalysis {
	return &ResumeAnalysis{
		FileName:           fileName,
		Name:               p.Name,
		Email:              p.Email,
		Phone:              p.Phone,
		LinkedinURL:        p.LinkedinURL,
		PortfolioURL:       p.PortfolioURL,
		Summary:            p.Summary,
		WorkExperience:     mustJSON(p.WorkExperience),
		Education:          mustJSON(p.Education),
		Projects:           mustJSON(p.Projects),
		Certifications:     mustJSON(p.Certifications),
		TechnicalSkills:    mustJSON(p.TechnicalSkills),
		SoftSkills:         mustJSON(p.SoftSkills),
		UpskillSuggestions: mustJSON(p.UpskillSuggestions),
		ResumeRating:       p.ResumeRating,
		ImprovementAreas:   p.ImprovementAreas,
	}
}

// mustJSON never fails on the typed list fields; a nil slice still encodes
// as an empty array so the columns are never null.
func mustJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}

// AnalysisSummary is the reduced projection returned by the list endpoint.
type AnalysisSummary struct {
	ID                      uint      `json:"id"`
	FileName                string    `json:"file_name"`
	UploadedAt              time.Time `json:"uploaded_at"`
	Name                    *string   `json:"name"`
	Email                   *string   `json:"email"`
	ResumeRating            int       `json:"resume_rating"`
	ImprovementAreasPreview string    `json:"improvement_areas_preview"`
}

func NewSummary(r *ResumeAnalysis) AnalysisSummary {
	return AnalysisSummary{
		ID:                      r.ID,
		FileName:                r.FileName,
		UploadedAt:              r.UploadedAt,
		Name:                    r.Name,
		Email:                   r.Email,
		ResumeRating:            r.ResumeRating,
		ImprovementAreasPreview: Preview(r.ImprovementAreas, 100),
	}
}

// Preview truncates s to at most n characters.
func Preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// AnalysisStats are the aggregates computed over all stored records.
type AnalysisStats struct {
	TotalResumes     int64   `json:"total_resumes"`
	AvgRating        float64 `json:"avg_rating"`
	MaxRating        int     `json:"max_rating"`
	MinRating        int     `json:"min_rating"`
	HighRatedCount   int64   `json:"high_rated_count"`
	MediumRatedCount int64   `json:"medium_rated_count"`
	LowRatedCount    int64   `json:"low_rated_count"`
}
