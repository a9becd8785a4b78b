// Package gemini adapts Google's Gemini API (the generative-content-style
// vendor family) to the generation.Invoker interface.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/phrazzld/gtm-api/internal/generation"
)

// Adapter implements generation.Invoker for Gemini.
type Adapter struct {
	logger *slog.Logger
}

// NewAdapter creates a Gemini adapter. The vendor client is constructed
// per attempt from the credential in the CallContext.
func NewAdapter(logger *slog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// Vendor implements generation.Invoker.
func (a *Adapter) Vendor() string { return generation.VendorGemini }

// Invoke sends one generate-content request bound by ctx's deadline and
// maps the response into a generation.Result.
func (a *Adapter) Invoke(ctx context.Context, call generation.CallContext, systemPrompt, userMessage string) (*generation.Result, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  call.Key.Secret,
		Backend: genai.BackendGeminiAPI,
	}
	if call.Endpoint != "" {
		clientConfig.HTTPOptions.BaseURL = call.Endpoint
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, &generation.ProviderError{Vendor: generation.VendorGemini, Err: fmt.Errorf("create client: %w", err)}
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}

	a.logger.DebugContext(ctx, "calling Gemini generate content",
		"model", call.Model,
		"key_id", call.Key.KeyID)

	resp, err := client.Models.GenerateContent(ctx, call.Model, genai.Text(userMessage), config)
	if err != nil {
		return nil, &generation.ProviderError{Vendor: generation.VendorGemini, Err: fmt.Errorf("generate content request: %w", err)}
	}

	result, err := mapResponse(resp)
	if err != nil {
		return nil, &generation.ProviderError{Vendor: generation.VendorGemini, Err: err}
	}
	return result, nil
}

// mapResponse converts a Gemini response into the normalized result,
// concatenating the text parts of the first candidate in the order the
// vendor returned them. Thought parts are not response text and are
// skipped.
func mapResponse(resp *genai.GenerateContentResponse) (*generation.Result, error) {
	if resp == nil {
		return nil, errors.New("nil response")
	}
	if len(resp.Candidates) == 0 {
		return nil, errors.New("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return nil, errors.New("empty content in first candidate")
	}
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, errors.New("content blocked by safety filters")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}

	var usage map[string]any
	if resp.UsageMetadata != nil {
		usage = map[string]any{
			"prompt_token_count":     resp.UsageMetadata.PromptTokenCount,
			"candidates_token_count": resp.UsageMetadata.CandidatesTokenCount,
			"total_token_count":      resp.UsageMetadata.TotalTokenCount,
		}
	}

	return &generation.Result{Text: sb.String(), Usage: usage}, nil
}
