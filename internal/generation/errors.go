package generation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Common errors returned by the generation package
var (
	// ErrValidation is returned when caller input is rejected before any
	// provider is attempted.
	ErrValidation = errors.New("invalid generation input")

	// ErrNoProviders is returned when no LLM vendor has a configured
	// credential. This is a startup-time configuration fault.
	ErrNoProviders = errors.New("no LLM provider configured")
)

// Kind classifies a generation failure for the transport boundary.
// These are the only error categories that cross the pipeline boundary.
type Kind string

const (
	KindValidation         Kind = "validation"
	KindConfiguration      Kind = "configuration"
	KindProvidersExhausted Kind = "all_providers_exhausted"
	KindTimeout            Kind = "timeout"
	KindMalformedOutput    Kind = "malformed_output"
	KindUnknown            Kind = "unknown"
)

// ProviderError wraps a single vendor fault (transport failure, non-2xx
// response, or unmappable response shape). It never escapes the executor:
// the executor converts it into a failover to the next provider.
type ProviderError struct {
	Vendor string
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Vendor, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// AttemptFailure records one failed provider attempt, in attempt order.
type AttemptFailure struct {
	Provider string
	Err      error
}

// ProvidersExhaustedError is returned when every configured provider was
// attempted and failed. Failures holds exactly one cause per attempted
// provider, preserving attempt order.
type ProvidersExhaustedError struct {
	Failures []AttemptFailure
}

func (e *ProvidersExhaustedError) Error() string {
	return fmt.Sprintf("all %d providers failed: %s", len(e.Failures), joinFailures(e.Failures))
}

// DeadlineError is returned when the shared deadline elapses before any
// provider succeeds. Failures holds the attempts observed so far.
type DeadlineError struct {
	Budget   time.Duration
	Failures []AttemptFailure
}

func (e *DeadlineError) Error() string {
	if len(e.Failures) == 0 {
		return fmt.Sprintf("generation deadline of %s exceeded before any attempt completed", e.Budget)
	}
	return fmt.Sprintf("generation deadline of %s exceeded after %d failed attempts: %s",
		e.Budget, len(e.Failures), joinFailures(e.Failures))
}

// MalformedOutputError is returned when model output cannot be parsed or
// validated as a playbook. Excerpt carries a truncated slice of the
// candidate text for diagnostics; Field names the first bad field when the
// JSON parsed but failed shape validation.
type MalformedOutputError struct {
	Field   string
	Excerpt string
	Err     error
}

func (e *MalformedOutputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed model output: field %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("malformed model output: %v (excerpt: %q)", e.Err, e.Excerpt)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// KindOf maps an error from the generation pipeline to its taxonomy kind.
// Structured types are checked before sentinels: a MalformedOutputError
// wraps the field-level validation failure that caused it, and must not
// be reclassified as caller-input validation.
func KindOf(err error) Kind {
	var (
		exhausted *ProvidersExhaustedError
		deadline  *DeadlineError
		malformed *MalformedOutputError
	)
	switch {
	case errors.As(err, &malformed):
		return KindMalformedOutput
	case errors.As(err, &exhausted):
		return KindProvidersExhausted
	case errors.As(err, &deadline):
		return KindTimeout
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNoProviders):
		return KindConfiguration
	default:
		return KindUnknown
	}
}

func joinFailures(failures []AttemptFailure) string {
	parts := make([]string, 0, len(failures))
	for _, f := range failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Provider, f.Err))
	}
	return strings.Join(parts, "; ")
}
