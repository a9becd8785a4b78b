package generation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/gtm-api/internal/domain"
)

// fakeInvoker is an in-memory Invoker with scripted behavior per call.
type fakeInvoker struct {
	vendor string
	invoke func(ctx context.Context, call CallContext, systemPrompt, userMessage string) (*Result, error)
	calls  int
}

func (f *fakeInvoker) Vendor() string { return f.vendor }

func (f *fakeInvoker) Invoke(ctx context.Context, call CallContext, systemPrompt, userMessage string) (*Result, error) {
	f.calls++
	return f.invoke(ctx, call, systemPrompt, userMessage)
}

func newTestService(t *testing.T, timeout time.Duration, providers []ProviderConfig, invokers ...Invoker) *Service {
	t.Helper()
	svc, err := NewService(testLogger(), providers, invokers, NewExecutor(timeout, testLogger()))
	require.NoError(t, err)
	return svc
}

func TestGeneratePlaybookEndToEnd(t *testing.T) {
	t.Parallel()

	doc := playbookJSON(t)
	invoker := &fakeInvoker{
		vendor: VendorOpenAI,
		invoke: func(_ context.Context, call CallContext, systemPrompt, userMessage string) (*Result, error) {
			assert.Equal(t, "gpt-4o-mini", call.Model)
			assert.Contains(t, systemPrompt, "You are GTM Copilot")
			assert.Equal(t, "Here is the product I need a GTM playbook for:\n\nA Chrome extension that blocks AI search results, $5/mo pro tier", userMessage)
			return &Result{Text: "```json\n" + doc + "\n```", Usage: map[string]any{"total_tokens": 1234}}, nil
		},
	}

	cfg := llmConfig()
	cfg.OpenAIAPIKeys = "sk-test"
	providers, err := BuildRegistry(cfg)
	require.NoError(t, err)

	svc := newTestService(t, time.Second, providers, invoker)
	playbook, err := svc.GeneratePlaybook(context.Background(), PlaybookRequest{
		ProductDescription: "A Chrome extension that blocks AI search results, $5/mo pro tier",
	})

	require.NoError(t, err)
	assert.Len(t, playbook.Weeks, domain.WeekCount)
	assert.Equal(t, 1, invoker.calls)
}

func TestGeneratePlaybookRejectsEmptyDescription(t *testing.T) {
	t.Parallel()

	invoker := &fakeInvoker{vendor: VendorOpenAI, invoke: func(context.Context, CallContext, string, string) (*Result, error) {
		return &Result{Text: "{}"}, nil
	}}
	svc := newTestService(t, time.Second, testProviders(VendorOpenAI), invoker)

	playbook, err := svc.GeneratePlaybook(context.Background(), PlaybookRequest{})

	assert.Nil(t, playbook)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Zero(t, invoker.calls, "validation must fail before any network attempt")
}

func TestGeneratePlaybookRejectsOverlongDescription(t *testing.T) {
	t.Parallel()

	invoker := &fakeInvoker{vendor: VendorOpenAI, invoke: func(context.Context, CallContext, string, string) (*Result, error) {
		return &Result{Text: "{}"}, nil
	}}
	svc := newTestService(t, time.Second, testProviders(VendorOpenAI), invoker)

	playbook, err := svc.GeneratePlaybook(context.Background(), PlaybookRequest{
		ProductDescription: strings.Repeat("x", MaxDescriptionLength+1),
	})

	assert.Nil(t, playbook)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, invoker.calls)
}

func TestGeneratePlaybookAcceptsMaxLengthDescription(t *testing.T) {
	t.Parallel()

	doc := playbookJSON(t)
	invoker := &fakeInvoker{vendor: VendorOpenAI, invoke: func(context.Context, CallContext, string, string) (*Result, error) {
		return &Result{Text: doc}, nil
	}}
	svc := newTestService(t, time.Second, testProviders(VendorOpenAI), invoker)

	_, err := svc.GeneratePlaybook(context.Background(), PlaybookRequest{
		ProductDescription: strings.Repeat("x", MaxDescriptionLength),
	})

	assert.NoError(t, err)
}

func TestGeneratePlaybookFailsOverOnTimeout(t *testing.T) {
	t.Parallel()

	doc := playbookJSON(t)
	hanging := &fakeInvoker{
		vendor: VendorOpenAI,
		invoke: func(ctx context.Context, _ CallContext, _, _ string) (*Result, error) {
			// First provider never answers within its slice of the budget.
			select {
			case <-ctx.Done():
				return nil, &ProviderError{Vendor: VendorOpenAI, Err: ctx.Err()}
			case <-time.After(50 * time.Millisecond):
				return nil, &ProviderError{Vendor: VendorOpenAI, Err: errors.New("gateway timeout")}
			}
		},
	}
	healthy := &fakeInvoker{
		vendor: VendorAnthropic,
		invoke: func(context.Context, CallContext, string, string) (*Result, error) {
			return &Result{Text: doc}, nil
		},
	}

	svc := newTestService(t, time.Second, testProviders(VendorOpenAI, VendorAnthropic), hanging, healthy)
	playbook, err := svc.GeneratePlaybook(context.Background(), PlaybookRequest{
		ProductDescription: "a tiny CLI tool",
	})

	require.NoError(t, err)
	assert.Len(t, playbook.Weeks, domain.WeekCount)
	assert.Equal(t, 1, hanging.calls)
	assert.Equal(t, 1, healthy.calls)
}

func TestGeneratePlaybookNoProviders(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, time.Second, nil)
	playbook, err := svc.GeneratePlaybook(context.Background(), PlaybookRequest{
		ProductDescription: "a tiny CLI tool",
	})

	assert.Nil(t, playbook)
	assert.ErrorIs(t, err, ErrNoProviders)
}

func TestGeneratePlaybookMalformedOutput(t *testing.T) {
	t.Parallel()

	invoker := &fakeInvoker{vendor: VendorGemini, invoke: func(context.Context, CallContext, string, string) (*Result, error) {
		return &Result{Text: "Sorry, I can only answer questions about the weather."}, nil
	}}
	svc := newTestService(t, time.Second, testProviders(VendorGemini), invoker)

	playbook, err := svc.GeneratePlaybook(context.Background(), PlaybookRequest{
		ProductDescription: "a tiny CLI tool",
	})

	assert.Nil(t, playbook)
	var malformed *MalformedOutputError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 1, invoker.calls, "malformed output is never retried by the pipeline")
}

func TestNewServiceRejectsMissingAdapter(t *testing.T) {
	t.Parallel()

	_, err := NewService(testLogger(), testProviders(VendorOpenAI, VendorGemini),
		[]Invoker{&fakeInvoker{vendor: VendorOpenAI}}, NewExecutor(time.Second, testLogger()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), VendorGemini)
}
