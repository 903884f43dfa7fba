package services

import (
	"errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Quiz specific errors
	ErrQuizNotFound = errors.New("quiz not found")

	// Response specific errors
	ErrResponseNotFound = errors.New("response not found")
	ErrNoResponses      = errors.New("no responses available for this quiz")
)

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrResponseNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}
