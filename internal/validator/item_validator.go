package validator

import (
	"fmt"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
)

// ItemValidator checks that an item's payload fields are coherent with its type.
type ItemValidator struct{}

// NewItemValidator creates a new item validator.
func NewItemValidator() *ItemValidator {
	return &ItemValidator{}
}

// ValidateContent validates the type-specific payload of a content item.
func (v *ItemValidator) ValidateContent(item *models.Item) error {
	switch item.Type {
	case models.SingleChoice, models.CaseSingleChoice:
		return v.validateChoiceContent(item)
	case models.MultiChoice:
		return v.validateMultiChoiceContent(item)
	case models.TrueFalse:
		return v.validateTrueFalseContent(item)
	case models.FillBlank:
		return v.validateFillBlankContent(item)
	case models.Ordering:
		return v.validateOrderingContent(item)
	case models.Matching:
		return v.validateMatchingContent(item)
	case models.FreeText:
		return v.validateFreeTextContent(item)
	default:
		return fmt.Errorf("unknown item type: %s", item.Type)
	}
}

func (v *ItemValidator) validateChoiceContent(item *models.Item) error {
	if len(item.Options) < 2 {
		return fmt.Errorf("item %s: choice items need at least 2 options", item.ID)
	}
	if item.CorrectOption == "" {
		return fmt.Errorf("item %s: missing correct option", item.ID)
	}
	if !contains(item.Options, item.CorrectOption) {
		return fmt.Errorf("item %s: correct option is not among the options", item.ID)
	}
	if item.Type == models.CaseSingleChoice && item.CaseStem == "" {
		return fmt.Errorf("item %s: case items need a case stem", item.ID)
	}
	return nil
}

func (v *ItemValidator) validateMultiChoiceContent(item *models.Item) error {
	if len(item.Options) < 2 {
		return fmt.Errorf("item %s: multi-choice items need at least 2 options", item.ID)
	}
	if len(item.CorrectSet) == 0 {
		return fmt.Errorf("item %s: multi-choice items need at least 1 correct answer", item.ID)
	}
	for _, answer := range item.CorrectSet {
		if !contains(item.Options, answer) {
			return fmt.Errorf("item %s: correct answer %q is not among the options", item.ID, answer)
		}
	}
	return nil
}

func (v *ItemValidator) validateTrueFalseContent(item *models.Item) error {
	if item.BoolAnswer == nil {
		return fmt.Errorf("item %s: true/false items need a bool answer", item.ID)
	}
	return nil
}

func (v *ItemValidator) validateFillBlankContent(item *models.Item) error {
	if item.BlankAnswer == "" {
		return fmt.Errorf("item %s: fill-blank items need a blank answer", item.ID)
	}
	return nil
}

func (v *ItemValidator) validateOrderingContent(item *models.Item) error {
	if len(item.Steps) < 2 {
		return fmt.Errorf("item %s: ordering items need at least 2 steps", item.ID)
	}
	if len(item.Solution) != len(item.Steps) {
		return fmt.Errorf("item %s: solution length must match step count", item.ID)
	}
	for _, step := range item.Solution {
		if !contains(item.Steps, step) {
			return fmt.Errorf("item %s: solution step %q is not among the steps", item.ID, step)
		}
	}
	return nil
}

func (v *ItemValidator) validateMatchingContent(item *models.Item) error {
	if len(item.Left) < 2 || len(item.Right) < 2 {
		return fmt.Errorf("item %s: matching items need at least 2 pairs", item.ID)
	}
	if len(item.Pairs) != len(item.Left) {
		return fmt.Errorf("item %s: every left entry needs a gold pairing", item.ID)
	}
	for left, right := range item.Pairs {
		if !contains(item.Left, left) {
			return fmt.Errorf("item %s: pairing key %q is not a left entry", item.ID, left)
		}
		if !contains(item.Right, right) {
			return fmt.Errorf("item %s: pairing value %q is not a right entry", item.ID, right)
		}
	}
	return nil
}

func (v *ItemValidator) validateFreeTextContent(item *models.Item) error {
	if item.Rubric == "" && len(item.Keywords) == 0 {
		return fmt.Errorf("item %s: free-text items need a rubric or keywords", item.ID)
	}
	return nil
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
