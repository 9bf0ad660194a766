package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when credentials are wrong or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrContactInUse is returned when a contact delete would orphan projects
	ErrContactInUse = errors.New("contact is referenced by projects")

	// ErrInvalidTransition is returned for a disallowed pipeline move
	ErrInvalidTransition = errors.New("invalid pipeline transition")

	// ErrTerminalStatus is returned when moving a project out of Won or Lost
	ErrTerminalStatus = errors.New("project pipeline status is terminal")

	// ErrConfirmationRequired is returned when a destructive transition
	// is requested without the confirm flag
	ErrConfirmationRequired = errors.New("transition requires confirmation")

	// ErrProviderFailure is returned when the email provider rejects a send
	ErrProviderFailure = errors.New("email provider failure")
)
