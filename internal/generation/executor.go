package generation

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/gtm-api/internal/redact"
)

// UnitOfWork is one provider attempt. The executor never inspects vendor
// identity beyond the CallContext it builds; dispatch to the matching
// adapter happens inside the unit of work.
type UnitOfWork func(ctx context.Context, call CallContext) (*Result, error)

// Executor drives a unit of work across an ordered provider list with one
// shared deadline. Providers are attempted strictly in order, never
// concurrently, so failover stays deterministic and a transient outage is
// not amplified. There is no same-provider retry and no backoff: recovery
// is purely failover to the next configured provider.
type Executor struct {
	timeout time.Duration
	logger  *slog.Logger
}

// NewExecutor creates an Executor with the given total time budget for
// one Execute call.
func NewExecutor(timeout time.Duration, logger *slog.Logger) *Executor {
	return &Executor{timeout: timeout, logger: logger}
}

// Execute attempts each provider in order until one succeeds. The
// deadline is computed once at call start; later attempts run against the
// shrinking remainder of the same budget, and an in-flight call is
// abandoned via context cancellation when the budget runs out.
//
// Returns the first successful Result, a *DeadlineError when the budget
// elapses first (carrying the failures observed so far), or a
// *ProvidersExhaustedError when every provider failed (one cause per
// provider, attempt order preserved).
func (e *Executor) Execute(ctx context.Context, providers []ProviderConfig, work UnitOfWork) (*Result, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var failures []AttemptFailure
	for _, p := range providers {
		// Only the first credential entry is used per attempt; key
		// rotation across calls is a policy for the caller, not this loop.
		call := CallContext{
			Provider: p.Name,
			Model:    p.Model,
			Key:      p.Keys[0],
			Endpoint: p.Endpoint,
		}

		e.logger.InfoContext(ctx, "attempting provider",
			"provider", call.Provider,
			"model", call.Model,
			"key_id", call.Key.KeyID)

		result, err := work(ctx, call)
		if err == nil {
			e.logger.InfoContext(ctx, "provider call succeeded",
				"provider", call.Provider,
				"failed_attempts", len(failures))
			return result, nil
		}

		failures = append(failures, AttemptFailure{Provider: call.Provider, Err: err})
		e.logger.WarnContext(ctx, "provider call failed, failing over",
			"provider", call.Provider,
			"error", redact.Error(err))

		if ctx.Err() != nil {
			return nil, &DeadlineError{Budget: e.timeout, Failures: failures}
		}
	}

	return nil, &ProvidersExhaustedError{Failures: failures}
}
