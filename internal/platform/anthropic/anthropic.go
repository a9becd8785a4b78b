// Package anthropic adapts the Anthropic Messages API (the messages-style
// vendor family) to the generation.Invoker interface.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/phrazzld/gtm-api/internal/generation"
)

// maxTokens caps the completion length. A full four-week playbook with
// templates runs long, so this stays generous.
const maxTokens = 8192

// Adapter implements generation.Invoker for Anthropic.
type Adapter struct {
	logger *slog.Logger
}

// NewAdapter creates an Anthropic adapter. The vendor client is
// constructed per attempt from the credential in the CallContext.
func NewAdapter(logger *slog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// Vendor implements generation.Invoker.
func (a *Adapter) Vendor() string { return generation.VendorAnthropic }

// Invoke sends one Messages API request bound by ctx's deadline and maps
// the response into a generation.Result.
func (a *Adapter) Invoke(ctx context.Context, call generation.CallContext, systemPrompt, userMessage string) (*generation.Result, error) {
	opts := []option.RequestOption{option.WithAPIKey(call.Key.Secret)}
	if call.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(call.Endpoint))
	}
	client := anthropic.NewClient(opts...)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(call.Model),
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMessage)),
		},
	}

	a.logger.DebugContext(ctx, "calling Anthropic messages",
		"model", call.Model,
		"key_id", call.Key.KeyID)

	resp, err := client.Messages.New(ctx, params)
	if err != nil {
		return nil, &generation.ProviderError{Vendor: generation.VendorAnthropic, Err: fmt.Errorf("messages request: %w", err)}
	}
	if resp == nil {
		return nil, &generation.ProviderError{Vendor: generation.VendorAnthropic, Err: errors.New("nil response")}
	}

	return &generation.Result{
		Text: collectText(resp.Content),
		Usage: map[string]any{
			"input_tokens":  resp.Usage.InputTokens,
			"output_tokens": resp.Usage.OutputTokens,
		},
	}, nil
}

// collectText concatenates the text blocks of a message in response
// order, skipping non-text blocks. No blocks yields an empty string; the
// extractor decides whether that is an error.
func collectText(blocks []anthropic.ContentBlockUnion) string {
	var sb strings.Builder
	for _, block := range blocks {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String()
}
