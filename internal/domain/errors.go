package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")

	// ErrInvalidCredentials covers both unknown username and wrong password;
	// callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidActivationCode signals a missing or already redeemed code.
	ErrInvalidActivationCode = errors.New("invalid activation code")

	// ErrInsufficientCorpus signals a word universe too small to build a
	// question (fewer than one correct plus three distractors).
	ErrInsufficientCorpus = errors.New("insufficient corpus")

	// ErrUnknownWord signals an answer check against a word that exists in
	// neither the system corpus nor the user's library.
	ErrUnknownWord = errors.New("unknown word")

	// ErrTranslationUnavailable signals a failure of the external translator.
	ErrTranslationUnavailable = errors.New("translation unavailable")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
