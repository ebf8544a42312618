package services

import (
	"errors"
	"fmt"

	apperrors "github.com/spamms1985-sudo/gpa-lernapp/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Curriculum errors
	ErrTopicNotFound     = errors.New("topic not found")
	ErrSkillAreaNotFound = errors.New("skill area not found for topic")

	// Item errors
	ErrItemNotFound = errors.New("item not found")

	// Session errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionCompleted = errors.New("session already completed")
	ErrItemNotCurrent   = errors.New("item is not the current session item")
	ErrSessionEmpty     = errors.New("no items available for this scope")

	// Student errors
	ErrStudentNotFound = errors.New("student not found")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from the errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ResponseError marks a malformed answer submission. It is always recoverable:
// the caller re-prompts the same question.
type ResponseError struct {
	ItemID  string `json:"item_id"`
	Message string `json:"message"`
}

func (re *ResponseError) Error() string {
	return fmt.Sprintf("invalid response for item %s: %s", re.ItemID, re.Message)
}

func NewResponseError(itemID, message string) *ResponseError {
	return &ResponseError{ItemID: itemID, Message: message}
}

// NewValidationError creates a new validation error using the shared type.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// ===== ERROR CLASSIFICATION =====

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrTopicNotFound) ||
		errors.Is(err, ErrSkillAreaNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrStudentNotFound)
}

func IsResponseError(err error) bool {
	var re *ResponseError
	return errors.As(err, &re)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	var ves ValidationErrors
	return errors.As(err, &ve) || errors.As(err, &ves) || IsResponseError(err)
}
