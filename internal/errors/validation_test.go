package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("topic", "must be one of LF1..LF10", "LF99")

	if err.Field != "topic" {
		t.Errorf("Expected field to be 'topic', got '%s'", err.Field)
	}
	if err.Message != "must be one of LF1..LF10" {
		t.Errorf("Expected message to be 'must be one of LF1..LF10', got '%s'", err.Message)
	}
	if err.Value != "LF99" {
		t.Errorf("Expected value to be 'LF99', got '%v'", err.Value)
	}

	expected := "validation error on field 'topic': must be one of LF1..LF10"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("student", "is required", nil))
	expected := "validation failed: student is required"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("difficulty", "must be between 1 and 3", 9))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("type", "must be a known item type", "item_type", "essay")

	if err.Rule != "item_type" {
		t.Errorf("Expected rule to be 'item_type', got '%s'", err.Rule)
	}
	if err.Field != "type" {
		t.Errorf("Expected field to be 'type', got '%s'", err.Field)
	}
}
