package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON            = "INVALID_JSON"
	ErrCodeValidation             = "VALIDATION_ERROR"
	ErrCodeUnauthorised           = "UNAUTHORIZED"
	ErrCodeNotFoundOrUnauthorized = "NOT_FOUND_OR_UNAUTHORIZED"
	ErrCodeRateLimited            = "RATE_LIMITED"
	ErrCodeInternalError          = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrUnauthorized = NewDomainError(ErrCodeUnauthorised, "Unauthorized")

	// ErrNotFoundOrUnauthorized covers both a missing meal and a meal owned by
	// someone else. Keep it a single value so callers cannot tell them apart.
	ErrNotFoundOrUnauthorized = NewDomainError(ErrCodeNotFoundOrUnauthorized, "Meal not found or not owned by caller")

	ErrDescriptionRequired = NewDomainError(ErrCodeValidation, "Description is required")
	ErrInvalidMealType     = NewDomainError(ErrCodeValidation, "Default meal type must be one of Breakfast, Lunch, Dinner, Snack")
	ErrInvalidDate         = NewDomainError(ErrCodeValidation, "Date must be YYYY-MM-DD or an RFC 3339 timestamp")
	ErrInvalidTime         = NewDomainError(ErrCodeValidation, "Time must be HH:mm")
)

// IsValidation reports whether err is one of the validation errors.
func IsValidation(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == ErrCodeValidation
}
