package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
)

// Validator combines struct-tag validation with item payload validation.
type Validator struct {
	structValidator *validator.Validate
	itemValidator   *ItemValidator
}

// New creates the centralized validator instance.
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
		itemValidator:   NewItemValidator(),
	}
}

// ValidateStruct validates struct tags only.
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate performs struct-tag validation and returns the shared error type.
func (v *Validator) Validate(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// Item returns the item payload validator.
func (v *Validator) Item() *ItemValidator {
	return v.itemValidator
}

// registerCustomValidators registers all custom validation functions.
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("item_type", validateItemType)
	validate.RegisterValidation("difficulty_tier", validateDifficultyTier)
	validate.RegisterValidation("topic_code", validateTopicCode)
	validate.RegisterValidation("attempt_mode", validateAttemptMode)

	// Use json names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateItemType(fl validator.FieldLevel) bool {
	validTypes := []models.ItemType{
		models.SingleChoice,
		models.MultiChoice,
		models.TrueFalse,
		models.FillBlank,
		models.Ordering,
		models.Matching,
		models.FreeText,
		models.CaseSingleChoice,
	}

	value := fl.Field().String()
	for _, validType := range validTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

func validateDifficultyTier(fl validator.FieldLevel) bool {
	tier := fl.Field().Int()
	return tier >= int64(models.TierBasic) && tier <= int64(models.TierExam)
}

func validateTopicCode(fl validator.FieldLevel) bool {
	return models.IsTopic(fl.Field().String())
}

func validateAttemptMode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == string(models.ModeDiagnostic) || value == string(models.ModePractice)
}
