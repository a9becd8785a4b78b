package api

import (
	"net/http"

	"github.com/phrazzld/gtm-api/internal/generation"
)

// MapErrorToStatusCode maps generation pipeline errors to HTTP status
// codes based on their taxonomy kind. This prevents leaking internal
// error types to clients.
func MapErrorToStatusCode(err error) int {
	switch generation.KindOf(err) {
	case generation.KindValidation:
		return http.StatusBadRequest

	// A missing provider configuration is our fault, not the vendors'.
	case generation.KindConfiguration:
		return http.StatusInternalServerError

	case generation.KindProvidersExhausted, generation.KindMalformedOutput:
		return http.StatusBadGateway

	case generation.KindTimeout:
		return http.StatusGatewayTimeout

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error's taxonomy kind. Detailed causes are logged
// server-side only.
func GetSafeErrorMessage(err error) string {
	switch generation.KindOf(err) {
	case generation.KindValidation:
		return "Invalid product description"
	case generation.KindConfiguration:
		return "Service is not configured for playbook generation"
	case generation.KindProvidersExhausted, generation.KindTimeout, generation.KindMalformedOutput:
		return "Failed to generate playbook. Please try again."
	default:
		return "An unexpected error occurred"
	}
}
