package services

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/abhishekagarwal777/resume-analyzer/internal/apperrors"
)

// TextExtractor pulls plain text out of an uploaded document.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

type pdfExtractor struct{}

func NewPDFExtractor() TextExtractor {
	return &pdfExtractor{}
}

func (p *pdfExtractor) ExtractText(data []byte) (string, error) {
	const op = "pdfExtractor.ExtractText"

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", classifyOpenError(op, err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep whatever the rest yields.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), nil
}

// classifyOpenError separates documents the client can fix (encrypted,
// corrupted, not a PDF) from everything else.
func classifyOpenError(op string, err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "encrypt") || strings.Contains(msg, "password"):
		return apperrors.E(apperrors.CodeInvalidArgument, op,
			"The PDF is password-protected. Please upload an unprotected file.", err)
	case strings.Contains(msg, "malformed") || strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "not a pdf") || strings.Contains(msg, "trailer") ||
		strings.Contains(msg, "eof"):
		return apperrors.E(apperrors.CodeInvalidArgument, op,
			"The PDF appears to be corrupted or is not a valid PDF file.", err)
	default:
		return apperrors.E(apperrors.CodeInvalidArgument, op,
			"Could not read the uploaded PDF.", err)
	}
}
