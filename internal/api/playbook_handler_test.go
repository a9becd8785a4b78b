package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/gtm-api/internal/api/shared"
	"github.com/phrazzld/gtm-api/internal/domain"
	"github.com/phrazzld/gtm-api/internal/generation"
)

// stubGenerator returns a fixed playbook or error and records the request
// it was called with.
type stubGenerator struct {
	playbook *domain.Playbook
	err      error
	got      *generation.PlaybookRequest
}

func (s *stubGenerator) GeneratePlaybook(_ context.Context, req generation.PlaybookRequest) (*domain.Playbook, error) {
	s.got = &req
	if s.err != nil {
		return nil, s.err
	}
	return s.playbook, nil
}

func testPlaybook() *domain.Playbook {
	weeks := make([]domain.Week, domain.WeekCount)
	for i := range weeks {
		weeks[i] = domain.Week{
			Week:    i + 1,
			Theme:   "theme",
			Actions: []domain.Action{{Day: i*7 + 1, Action: "post", Channel: "hn", Tips: "early"}},
		}
	}
	return &domain.Playbook{
		Positioning:    "positioning",
		TargetAudience: domain.TargetAudience{Primary: "devs", Channels: []string{"hn"}},
		Competitors:    []domain.Competitor{{Name: "x", URL: "https://x", Pricing: "$1", Gap: "none"}},
		PricingSuggestion: domain.PricingSuggestion{
			Model:     "subscription",
			Tiers:     []domain.PricingTier{{Name: "Pro", Price: "$5/mo", Features: "all"}},
			Reasoning: "because",
		},
		Weeks: weeks,
	}
}

func doRequest(t *testing.T, gen generation.Generator, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewPlaybookHandler(gen, slog.New(slog.NewTextHandler(io.Discard, nil)))
	req := httptest.NewRequest(http.MethodPost, "/api/playbooks", bytes.NewBufferString(body))
	req = req.WithContext(shared.SetTraceID(req.Context()))
	rec := httptest.NewRecorder()
	handler.GeneratePlaybook(rec, req)
	return rec
}

func TestGeneratePlaybookHandlerSuccess(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{playbook: testPlaybook()}
	rec := doRequest(t, gen, `{
		"productDescription": "A Chrome extension that blocks AI search results, $5/mo pro tier",
		"productType": "browser extension",
		"targetAudience": "privacy-minded devs"
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got domain.Playbook
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Weeks, domain.WeekCount)

	require.NotNil(t, gen.got)
	assert.Equal(t, "browser extension", gen.got.ProductType)
	assert.Equal(t, "privacy-minded devs", gen.got.TargetAudience)
}

func TestGeneratePlaybookHandlerBadJSON(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, &stubGenerator{playbook: testPlaybook()}, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation", resp.Kind)
	assert.NotEmpty(t, resp.TraceID)
}

func TestGeneratePlaybookHandlerMissingDescription(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{playbook: testPlaybook()}
	rec := doRequest(t, gen, `{"productType": "SaaS"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, gen.got, "generator must not run for invalid requests")
}

func TestGeneratePlaybookHandlerOverlongDescription(t *testing.T) {
	t.Parallel()

	body, err := json.Marshal(map[string]string{
		"productDescription": strings.Repeat("x", 2001),
	})
	require.NoError(t, err)

	gen := &stubGenerator{playbook: testPlaybook()}
	rec := doRequest(t, gen, string(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, gen.got)
}

func TestGeneratePlaybookHandlerErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{
			name:   "exhausted",
			err:    &generation.ProvidersExhaustedError{Failures: []generation.AttemptFailure{{Provider: "openai", Err: errors.New("429")}}},
			status: http.StatusBadGateway,
			kind:   "all_providers_exhausted",
		},
		{
			name:   "timeout",
			err:    &generation.DeadlineError{},
			status: http.StatusGatewayTimeout,
			kind:   "timeout",
		},
		{
			name:   "malformed",
			err:    &generation.MalformedOutputError{Err: errors.New("no json")},
			status: http.StatusBadGateway,
			kind:   "malformed_output",
		},
		{
			name:   "configuration",
			err:    generation.ErrNoProviders,
			status: http.StatusInternalServerError,
			kind:   "configuration",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := doRequest(t, &stubGenerator{err: tc.err}, `{"productDescription": "a CLI tool"}`)

			assert.Equal(t, tc.status, rec.Code)

			var resp shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.kind, resp.Kind)
			assert.NotContains(t, resp.Error, "429", "vendor detail must stay server-side")
		})
	}
}
