package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"medreg/pkg/logger"
	"medreg/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type RecordValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewRecordValidator(log *logger.Logger) *RecordValidator {
	return &RecordValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *RecordValidator) ValidateTreatment(treatment *model.Treatment) error {
	return v.validateStruct(treatment)
}

func (v *RecordValidator) ValidateTreatmentUpdate(update *model.TreatmentUpdate) error {
	return v.validateStruct(update)
}

func (v *RecordValidator) ValidateInvestigation(investigation *model.Investigation) error {
	return v.validateStruct(investigation)
}

func (v *RecordValidator) ValidateInvestigationUpdate(update *model.InvestigationUpdate) error {
	return v.validateStruct(update)
}

func (v *RecordValidator) validateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *RecordValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
