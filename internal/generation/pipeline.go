package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/gtm-api/internal/domain"
)

// MaxDescriptionLength is the longest product description the pipeline
// accepts. The HTTP boundary enforces the same limit before requests
// reach this package.
const MaxDescriptionLength = 2000

// userMessageFormat is the fixed template the product description is
// embedded into for the user turn.
const userMessageFormat = "Here is the product I need a GTM playbook for:\n\n%s"

var _ Generator = (*Service)(nil)

// Service is the generation pipeline: prompt assembly, resilient provider
// execution, and structured output extraction for one request. All fields
// are immutable after construction, so one Service serves concurrent
// requests without locking.
type Service struct {
	logger    *slog.Logger
	providers []ProviderConfig
	invokers  map[string]Invoker
	executor  *Executor
	prompt    *PromptAssembler
}

// NewService wires the pipeline. Every provider in the registry must have
// a matching adapter; a gap here is a wiring bug, caught at startup
// rather than on the first unlucky request.
func NewService(logger *slog.Logger, providers []ProviderConfig, invokers []Invoker, executor *Executor) (*Service, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if executor == nil {
		return nil, errors.New("executor cannot be nil")
	}

	byVendor := make(map[string]Invoker, len(invokers))
	for _, inv := range invokers {
		byVendor[inv.Vendor()] = inv
	}
	for _, p := range providers {
		if _, ok := byVendor[p.Name]; !ok {
			return nil, fmt.Errorf("no adapter registered for provider %q", p.Name)
		}
	}

	return &Service{
		logger:    logger,
		providers: providers,
		invokers:  byVendor,
		executor:  executor,
		prompt:    PlaybookPrompt(),
	}, nil
}

// GeneratePlaybook implements Generator. It validates the request, builds
// the prompts, drives the resilient call, and extracts the playbook.
// Failures from the stages below propagate unchanged; only the taxonomy
// errors in errors.go cross this boundary.
func (s *Service) GeneratePlaybook(ctx context.Context, req PlaybookRequest) (*domain.Playbook, error) {
	if req.ProductDescription == "" {
		return nil, fmt.Errorf("%w: productDescription is required", ErrValidation)
	}
	if len(req.ProductDescription) > MaxDescriptionLength {
		return nil, fmt.Errorf("%w: productDescription exceeds %d characters", ErrValidation, MaxDescriptionLength)
	}
	if len(s.providers) == 0 {
		return nil, ErrNoProviders
	}

	systemPrompt := s.prompt.Build(PlaybookContext{
		ProductDescription: req.ProductDescription,
		ProductType:        req.ProductType,
		TargetAudience:     req.TargetAudience,
	})
	userMessage := fmt.Sprintf(userMessageFormat, req.ProductDescription)

	s.logger.DebugContext(ctx, "generation pipeline started",
		"description_length", len(req.ProductDescription),
		"prompt_length", len(systemPrompt),
		"providers", len(s.providers))

	result, err := s.executor.Execute(ctx, s.providers, func(ctx context.Context, call CallContext) (*Result, error) {
		return s.invokers[call.Provider].Invoke(ctx, call, systemPrompt, userMessage)
	})
	if err != nil {
		return nil, err
	}

	playbook, err := ExtractPlaybook(result.Text)
	if err != nil {
		s.logger.WarnContext(ctx, "model output failed extraction", "error", err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "playbook generated",
		"weeks", len(playbook.Weeks),
		"competitors", len(playbook.Competitors),
		"usage", result.Usage)

	return playbook, nil
}
