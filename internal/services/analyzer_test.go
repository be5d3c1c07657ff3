package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhishekagarwal777/resume-analyzer/internal/apperrors"
	"github.com/abhishekagarwal777/resume-analyzer/internal/logger"
)

type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) ExtractText(data []byte) (string, error) {
	return s.text, s.err
}

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

const resumeText = `Jane Doe, Senior Software Engineer with eight years of experience building
distributed systems in Go and operating PostgreSQL clusters at scale.`

const validResponse = `Here is the analysis you asked for:
` + "```json" + `
{
  "name": "Jane Doe",
  "email": "jane@example.com",
  "summary": "Senior engineer.",
  "work_experience": [{"role": "Engineer", "company": "Acme", "duration": "2016-2024", "description": ["Built systems"]}],
  "technical_skills": ["Go", "PostgreSQL"],
  "resume_rating": 9,
  "improvement_areas": "Add metrics to achievements."
}
` + "```" + `
Let me know if you need anything else!`

func newTestAnalyzer(ext TextExtractor, gen TextGenerator) Analyzer {
	return NewAnalyzer(ext, gen, logger.New())
}

func TestAnalyzeHappyPath(t *testing.T) {
	gen := &stubGenerator{response: validResponse}
	a := newTestAnalyzer(&stubExtractor{text: resumeText}, gen)

	rec, err := a.Analyze(context.Background(), []byte("%PDF-"), "jane.pdf")
	require.NoError(t, err)

	assert.Equal(t, "jane.pdf", rec.FileName)
	require.NotNil(t, rec.Name)
	assert.Equal(t, "Jane Doe", *rec.Name)
	assert.Equal(t, 9, rec.ResumeRating)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, rec.TechnicalSkillItems())

	// The prompt embeds the extracted text and demands JSON-only output.
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Jane Doe, Senior Software Engineer")
	assert.Contains(t, gen.prompts[0], "JSON only")
}

func TestAnalyzeEmptyDocument(t *testing.T) {
	a := newTestAnalyzer(&stubExtractor{text: "   \n\t  "}, &stubGenerator{})

	_, err := a.Analyze(context.Background(), []byte("x"), "empty.pdf")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))
	assert.Contains(t, apperrors.Message(err), "No text")
}

func TestAnalyzeInsufficientContent(t *testing.T) {
	a := newTestAnalyzer(&stubExtractor{text: "ten chars."}, &stubGenerator{})

	_, err := a.Analyze(context.Background(), []byte("x"), "short.pdf")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))
	assert.Contains(t, apperrors.Message(err), "enough text")
}

func TestAnalyzeExtractionFailurePassesThrough(t *testing.T) {
	extErr := apperrors.E(apperrors.CodeInvalidArgument, "pdfExtractor.ExtractText",
		"The PDF is password-protected. Please upload an unprotected file.", nil)
	a := newTestAnalyzer(&stubExtractor{err: extErr}, &stubGenerator{})

	_, err := a.Analyze(context.Background(), []byte("x"), "locked.pdf")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))
	assert.Contains(t, apperrors.Message(err), "password-protected")
}

func TestAnalyzeAITimeout(t *testing.T) {
	genErr := apperrors.E(apperrors.CodeTimeout, "geminiClient.GenerateText",
		"Resume analysis timed out. Please try again.", context.DeadlineExceeded)
	a := newTestAnalyzer(&stubExtractor{text: resumeText}, &stubGenerator{err: genErr})

	_, err := a.Analyze(context.Background(), []byte("x"), "slow.pdf")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeTimeout))
}

func TestAnalyzeMalformedResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"no braces", "I could not find anything useful in this resume."},
		{"unparsable braces", `{"name": "Jane", "resume_rating": }`},
		{"only closing brace", "} nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnalyzer(&stubExtractor{text: resumeText}, &stubGenerator{response: tt.response})
			_, err := a.Analyze(context.Background(), []byte("x"), "chatty.pdf")
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.CodeUnavailable))
		})
	}
}

func TestParseAnalysisJSONToleratesChattyModels(t *testing.T) {
	raw, err := parseAnalysisJSON("Sure! Here you go:\n```json\n{\"name\": \"Jane\"}\n```\nHope that helps.")
	require.NoError(t, err)
	assert.Equal(t, "Jane", raw["name"])
}

func TestParseAnalysisJSONPlainObject(t *testing.T) {
	raw, err := parseAnalysisJSON(`{"resume_rating": 7}`)
	require.NoError(t, err)
	assert.Equal(t, float64(7), raw["resume_rating"])
}

func TestAnalyzeSanitizesGarbagePayload(t *testing.T) {
	// Valid JSON, wrong shapes everywhere: the sanitizer must still produce
	// a complete record.
	resp := `{"resume_rating": "abc", "work_experience": "none", "summary": ` +
		`"` + strings.Repeat("s", 1200) + `"}`
	a := newTestAnalyzer(&stubExtractor{text: resumeText}, &stubGenerator{response: resp})

	rec, err := a.Analyze(context.Background(), []byte("x"), "odd.pdf")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.ResumeRating)
	assert.Equal(t, "[]", string(rec.WorkExperience))
	require.NotNil(t, rec.Summary)
	assert.Len(t, *rec.Summary, 1000)
}
