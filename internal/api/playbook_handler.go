package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/gtm-api/internal/api/shared"
	"github.com/phrazzld/gtm-api/internal/generation"
)

// GeneratePlaybookRequest represents the request body for playbook
// generation. The max tag mirrors the pipeline's own description limit;
// the pipeline revalidates regardless.
type GeneratePlaybookRequest struct {
	ProductDescription string `json:"productDescription" validate:"required,max=2000"`
	ProductType        string `json:"productType,omitempty"`
	TargetAudience     string `json:"targetAudience,omitempty"`
}

// PlaybookHandler handles playbook generation HTTP requests.
type PlaybookHandler struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewPlaybookHandler creates a new PlaybookHandler.
func NewPlaybookHandler(generator generation.Generator, logger *slog.Logger) *PlaybookHandler {
	return &PlaybookHandler{
		generator: generator,
		logger:    logger,
	}
}

// GeneratePlaybook handles POST /api/playbooks requests.
func (h *PlaybookHandler) GeneratePlaybook(w http.ResponseWriter, r *http.Request) {
	var req GeneratePlaybookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			string(generation.KindValidation), "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			string(generation.KindValidation), "productDescription is required and must not exceed 2000 characters")
		return
	}

	playbook, err := h.generator.GeneratePlaybook(r.Context(), generation.PlaybookRequest{
		ProductDescription: req.ProductDescription,
		ProductType:        req.ProductType,
		TargetAudience:     req.TargetAudience,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err),
			string(generation.KindOf(err)),
			GetSafeErrorMessage(err),
			err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, playbook)
}
