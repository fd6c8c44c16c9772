package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// ScoringModel is the generative scoring oracle. The request carries the
// instruction prompt plus resume content as either extracted text or one or
// more JPEG page scans. The response is the raw model text, expected to
// contain a single JSON verdict.
//
// Implementations classify provider failures: a rate-limit rejection comes
// back wrapped in ErrRateLimited, everything else in ErrConnectivity, so
// callers never inspect provider-specific error text.
type ScoringModel interface {
	GenerateVerdict(ctx context.Context, prompt string, resumeText string, resumeImages [][]byte) (string, error)
}

type geminiModel struct {
	client    *genai.Client
	modelName string
}

// NewGeminiModel creates a ScoringModel backed by one Gemini API key.
func NewGeminiModel(ctx context.Context, apiKey, modelName string) (ScoringModel, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiModel{
		client:    client,
		modelName: modelName,
	}, nil
}

// GenerateVerdict implements ScoringModel.
func (g *geminiModel) GenerateVerdict(ctx context.Context, prompt string, resumeText string, resumeImages [][]byte) (string, error) {
	parts := []*genai.Part{{Text: prompt}}

	if resumeText != "" {
		parts = append(parts, &genai.Part{Text: resumeText})
	} else {
		for _, img := range resumeImages {
			parts = append(parts, &genai.Part{
				InlineData: &genai.Blob{
					MIMEType: "image/jpeg",
					Data:     img,
				},
			})
		}
	}

	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: parts,
	}}

	temperature := float32(0.2)
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 2048,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		return "", classifyModelError(err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: empty response", ErrConnectivity)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: no text content in response", ErrConnectivity)
	}

	return text, nil
}

// classifyModelError maps a provider error onto the pipeline taxonomy. The
// decision is made here in the adapter, not by substring checks at call
// sites.
func classifyModelError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED" {
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	// Some SDK paths surface quota rejections as plain errors.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}

	return fmt.Errorf("%w: %v", ErrConnectivity, err)
}
