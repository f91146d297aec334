package company

import "errors"

var (
	// ErrCompanyNotFound indicates the company doesn't exist.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrApplicationNotFound indicates the application doesn't exist in the company.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrNoteNotFound indicates the interview note doesn't exist.
	ErrNoteNotFound = errors.New("interview note not found")
	// ErrDuplicateName indicates a case-insensitive company name collision.
	ErrDuplicateName = errors.New("duplicate company name")
	// ErrInvalidInput indicates invalid company, application or note input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrFollowUpBeforeApplied indicates a follow-up date earlier than the application date.
	ErrFollowUpBeforeApplied = errors.New("follow-up date must be on or after the application date")
)
