package generation

import (
	"context"

	"github.com/phrazzld/gtm-api/internal/domain"
)

// PlaybookRequest is the caller-facing input to playbook generation.
// ProductType and TargetAudience are optional hints.
type PlaybookRequest struct {
	ProductDescription string
	ProductType        string
	TargetAudience     string
}

// Generator defines the interface for generating playbooks from a product
// description. It is the boundary between the application core and the
// external LLM services behind it.
type Generator interface {
	// GeneratePlaybook produces a validated playbook or one of the
	// taxonomy errors defined in errors.go.
	GeneratePlaybook(ctx context.Context, req PlaybookRequest) (*domain.Playbook, error)
}

// Result is the vendor-agnostic outcome every adapter must produce.
// Text is the concatenation of all plain-text content segments in the
// order the vendor returned them; an absent segment list yields an empty
// string, not an error. Usage passes vendor accounting fields through
// opaquely and may be nil.
type Result struct {
	Text  string
	Usage map[string]any
}

// Credential is one API key for a vendor. KeyID identifies the entry for
// logging ("openai/0"); Secret is never logged.
type Credential struct {
	KeyID  string
	Secret string
}

// ProviderConfig describes one eligible LLM vendor: its registry name,
// the model to request, and its ordered credential entries. Endpoint
// optionally overrides the vendor's default base URL. Immutable after
// BuildRegistry.
type ProviderConfig struct {
	Name     string
	Model    string
	Keys     []Credential
	Endpoint string
}

// CallContext is the per-attempt view handed to an adapter: the resolved
// provider, model, and the single credential selected for this attempt.
// Built fresh by the executor for every attempt.
type CallContext struct {
	Provider string
	Model    string
	Key      Credential
	Endpoint string
}

// Invoker is implemented by one adapter per vendor API family. Invoke
// sends a single generation request bound by ctx's deadline and maps the
// vendor response into a Result, or fails with *ProviderError.
type Invoker interface {
	Invoke(ctx context.Context, call CallContext, systemPrompt, userMessage string) (*Result, error)

	// Vendor returns the registry name this adapter serves.
	Vendor() string
}
