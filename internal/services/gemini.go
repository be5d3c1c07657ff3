package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/abhishekagarwal777/resume-analyzer/internal/apperrors"
)

// TextGenerator is the AI collaborator boundary: given a prompt it returns
// free-form text expected to contain JSON.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type geminiClient struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string, timeout time.Duration) (TextGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiClient{
		client:    client,
		modelName: modelName,
		timeout:   timeout,
	}, nil
}

func (g *geminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	const op = "geminiClient.GenerateText"

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(0.2)),
		MaxOutputTokens: 4096,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", classifyGenerateError(op, err)
	}

	if resp == nil || resp.Text() == "" {
		return "", apperrors.E(apperrors.CodeUnavailable, op,
			"The AI service returned an empty response. Please try again.", errors.New("no text content in response"))
	}

	return resp.Text(), nil
}

func classifyGenerateError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.E(apperrors.CodeTimeout, op,
			"Resume analysis timed out. Please try again.", err)
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 429:
			return apperrors.E(apperrors.CodeRateLimited, op,
				"The AI service rate limit was reached. Please try again shortly.", err)
		case apiErr.Code == 401 || apiErr.Code == 403:
			return apperrors.E(apperrors.CodeUnavailable, op,
				"The AI service rejected the request. Check the service configuration.", err)
		case apiErr.Code >= 500:
			return apperrors.E(apperrors.CodeUnavailable, op,
				"The AI service is temporarily unavailable. Please try again later.", err)
		}
	}

	if strings.Contains(err.Error(), "quota") {
		return apperrors.E(apperrors.CodeUnavailable, op,
			"The AI service quota is exhausted. Please try again later.", err)
	}

	return apperrors.E(apperrors.CodeUnavailable, op,
		"The AI service is unavailable. Please try again later.", err)
}
