// Package openai adapts the OpenAI Chat Completions API (the
// chat-completion-style vendor family) to the generation.Invoker
// interface.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/phrazzld/gtm-api/internal/generation"
)

// Adapter implements generation.Invoker for OpenAI.
type Adapter struct {
	logger *slog.Logger
}

// NewAdapter creates an OpenAI adapter. The vendor client is constructed
// per attempt from the credential in the CallContext, so credential
// rotation needs no shared state here.
func NewAdapter(logger *slog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// Vendor implements generation.Invoker.
func (a *Adapter) Vendor() string { return generation.VendorOpenAI }

// Invoke sends one chat completion request bound by ctx's deadline and
// maps the response into a generation.Result.
func (a *Adapter) Invoke(ctx context.Context, call generation.CallContext, systemPrompt, userMessage string) (*generation.Result, error) {
	opts := []option.RequestOption{option.WithAPIKey(call.Key.Secret)}
	if call.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(call.Endpoint))
	}
	client := openai.NewClient(opts...)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(call.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userMessage),
		},
	}

	a.logger.DebugContext(ctx, "calling OpenAI chat completions",
		"model", call.Model,
		"key_id", call.Key.KeyID)

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, &generation.ProviderError{Vendor: generation.VendorOpenAI, Err: fmt.Errorf("chat completion request: %w", err)}
	}

	result, err := mapResponse(resp)
	if err != nil {
		return nil, &generation.ProviderError{Vendor: generation.VendorOpenAI, Err: err}
	}
	return result, nil
}

// mapResponse converts a chat completion into the normalized result. The
// Chat Completions API returns a single content string per choice; only
// the first choice is used.
func mapResponse(resp *openai.ChatCompletion) (*generation.Result, error) {
	if resp == nil {
		return nil, errors.New("nil response")
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no choices in response")
	}

	usage := map[string]any{
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
		"total_tokens":      resp.Usage.TotalTokens,
	}

	return &generation.Result{
		Text:  resp.Choices[0].Message.Content,
		Usage: usage,
	}, nil
}
