package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/abhishekagarwal777/resume-analyzer/internal/apperrors"
	"github.com/abhishekagarwal777/resume-analyzer/internal/models"
)

// minTextLength is the smallest extracted-text size that can plausibly be a
// resume; anything shorter is rejected before spending an AI call.
const minTextLength = 50

// Analyzer runs the full pipeline for one uploaded file: extract text,
// invoke the AI collaborator, sanitize its output, and produce a complete
// record ready for storage.
type Analyzer interface {
	Analyze(ctx context.Context, data []byte, fileName string) (*models.ResumeAnalysis, error)
}

type analyzer struct {
	extractor     TextExtractor
	generator     TextGenerator
	promptBuilder *PromptBuilder
	log           *logrus.Logger
}

func NewAnalyzer(extractor TextExtractor, generator TextGenerator, log *logrus.Logger) Analyzer {
	return &analyzer{
		extractor:     extractor,
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		log:           log,
	}
}

func (a *analyzer) Analyze(ctx context.Context, data []byte, fileName string) (*models.ResumeAnalysis, error) {
	const op = "analyzer.Analyze"

	text, err := a.extractor.ExtractText(data)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.E(apperrors.CodeInvalidArgument, op,
			"No text could be extracted from the PDF. The file may be empty or image-based.", nil)
	}
	if len(text) < minTextLength {
		return nil, apperrors.E(apperrors.CodeInvalidArgument, op,
			"The PDF does not contain enough text to analyze as a resume.", nil)
	}

	a.log.WithFields(logrus.Fields{
		"file_name":   fileName,
		"text_length": len(text),
	}).Info("resume text extracted")

	prompt := a.promptBuilder.BuildAnalysisPrompt(text)

	response, err := a.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	raw, err := parseAnalysisJSON(response)
	if err != nil {
		return nil, err
	}

	payload := Sanitize(raw)
	record := payload.ToRecord(fileName)

	a.log.WithFields(logrus.Fields{
		"file_name": fileName,
		"rating":    record.ResumeRating,
	}).Info("resume analysis completed")

	return record, nil
}

// parseAnalysisJSON extracts the JSON object from a possibly chatty model
// response: code-fence markers are stripped, then the substring between the
// first '{' and the last '}' is decoded. Known limitation: unbalanced braces
// inside string values can defeat the heuristic.
func parseAnalysisJSON(text string) (map[string]any, error) {
	const op = "analyzer.parseAnalysisJSON"

	cleaned := stripCodeFences(text)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return nil, apperrors.E(apperrors.CodeUnavailable, op,
			"The AI service returned an unreadable response. Please try again.", nil)
	}

	candidate := cleaned[start : end+1]
	if !gjson.Valid(candidate) {
		return nil, apperrors.E(apperrors.CodeUnavailable, op,
			"The AI service returned malformed JSON. Please try again.", nil)
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return nil, apperrors.E(apperrors.CodeUnavailable, op,
			"The AI service returned malformed JSON. Please try again.", err)
	}

	return raw, nil
}

func stripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
