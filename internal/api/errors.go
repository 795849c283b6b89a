package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/uditisharmaaa/journa/internal/domain"
	"github.com/uditisharmaaa/journa/internal/generation"
	"github.com/uditisharmaaa/journa/internal/service/auth"
	"github.com/uditisharmaaa/journa/internal/speech"
	"github.com/uditisharmaaa/journa/internal/store"
	"github.com/uditisharmaaa/journa/internal/workflow"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrEntryNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Workflow sequencing conflicts
	case errors.Is(err, workflow.ErrCycleInFlight),
		errors.Is(err, workflow.ErrStaleCycle),
		errors.Is(err, workflow.ErrNotReframed),
		errors.Is(err, speech.ErrNotListening):
		return http.StatusConflict

	// Validation errors
	case workflow.IsValidationError(err),
		errors.Is(err, workflow.ErrUnknownDistortion),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrMoodOutOfRange),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Upstream classifier / generator failures
	case errors.Is(err, generation.ErrClassificationFailed),
		errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrContentBlocked),
		errors.Is(err, generation.ErrInvalidResponse):
		return http.StatusBadGateway

	// Capability not available in this deployment
	case errors.Is(err, speech.ErrCapabilityUnavailable):
		return http.StatusNotImplemented

	case errors.Is(err, speech.ErrStreamFull):
		return http.StatusTooManyRequests

	// Default: internal server error (includes persistence failures)
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrEntryNotFound):
		return "Entry not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, workflow.ErrEmptyDraft):
		return "Journal entry text cannot be empty"

	case errors.Is(err, workflow.ErrMoodNotSet):
		return "A mood is required before saving"

	case errors.Is(err, workflow.ErrCycleInFlight):
		return "An analysis is already in progress"

	case errors.Is(err, workflow.ErrStaleCycle):
		return "The draft changed while analyzing; please retry"

	case errors.Is(err, workflow.ErrNotReframed):
		return "The draft has not been analyzed yet"

	case errors.Is(err, workflow.ErrUnknownDistortion):
		return "Unknown distortion label"

	case errors.Is(err, generation.ErrClassificationFailed),
		errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrContentBlocked),
		errors.Is(err, generation.ErrInvalidResponse):
		return "The analysis service is temporarily unavailable; please retry"

	case errors.Is(err, speech.ErrCapabilityUnavailable):
		return "Speech capture is not available; you can still type your entry"

	case errors.Is(err, domain.ErrMoodOutOfRange):
		return fmt.Sprintf("Mood must be between %d and %d", domain.MoodMin, domain.MoodMax)

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entry data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validator errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
