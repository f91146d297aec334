package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/jobtracker/internal/csvio"
	"github.com/rpggio/jobtracker/internal/domain/company"
)

// APIError represents a tool error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to tool error codes. Unknown errors map to
// INTERNAL.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, company.ErrCompanyNotFound):
		return &APIError{Code: "COMPANY_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call list_companies for valid ids"}
	case errors.Is(err, company.ErrApplicationNotFound):
		return &APIError{Code: "APPLICATION_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call get_company for its application ids"}
	case errors.Is(err, company.ErrNoteNotFound):
		return &APIError{Code: "NOTE_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call get_company for its note ids"}
	case errors.Is(err, company.ErrDuplicateName):
		return &APIError{Code: "DUPLICATE_COMPANY", Message: err.Error(), RecoveryHint: "Company names are unique ignoring case"}
	case errors.Is(err, company.ErrFollowUpBeforeApplied):
		return &APIError{Code: "INVALID_FOLLOW_UP", Message: err.Error()}
	case errors.Is(err, company.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, csvio.ErrMalformedInput):
		return &APIError{Code: "MALFORMED_CSV", Message: err.Error(), RecoveryHint: "Read jobtracker://docs/csv for the expected columns"}
	default:
		return &APIError{Code: "INTERNAL", Message: err.Error()}
	}
}
