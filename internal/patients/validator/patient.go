package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"

	"medreg/pkg/logger"
	"medreg/pkg/model"
)

var phoneRegions = []string{
	"IN",
	"US",
}

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

type PatientValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewPatientValidator(log *logger.Logger) *PatientValidator {
	return &PatientValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// Validate checks struct tags, then applies the stricter API-side phone rule:
// numbers in international form must actually parse. The importer writes
// through the repository directly and keeps raw values as they came in.
func (v *PatientValidator) Validate(patient *model.Patient) error {
	if err := v.validate.Struct(patient); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	var errs ValidationErrors
	if msg, ok := checkPhone(patient.Phone); !ok {
		errs = append(errs, ValidationError{Field: "Phone", Message: msg})
	}
	if msg, ok := checkPhone(patient.AltPhone1); !ok {
		errs = append(errs, ValidationError{Field: "AltPhone1", Message: msg})
	}
	if msg, ok := checkPhone(patient.AltPhone2); !ok {
		errs = append(errs, ValidationError{Field: "AltPhone2", Message: msg})
	}
	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (v *PatientValidator) ValidateUpdate(update *model.PatientUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func checkPhone(phone string) (string, bool) {
	if phone == "" || !strings.HasPrefix(phone, "+") {
		return "", true
	}

	for _, region := range phoneRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err != nil {
			continue
		}
		if phonenumbers.IsValidNumber(parsed) {
			return "", true
		}
	}
	return fmt.Sprintf("%s is not a valid phone number for regions %v", phone, phoneRegions), false
}

func (v *PatientValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
