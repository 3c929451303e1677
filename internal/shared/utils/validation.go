package utils

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"labmanager/internal/shared/biztime"
	"labmanager/internal/shared/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names for validation errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Zero dates count as absent for required/omitempty.
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		d, ok := v.Interface().(biztime.Date)
		if !ok || d.IsZero() {
			return nil
		}
		return d.Time
	}, biztime.Date{})
}

// ValidateStruct validates a struct and returns a ValidationError listing every failing field.
func ValidateStruct(s interface{}) error {
	return errorFromFields(ValidateFields(s))
}

// ValidateFields returns the field-level issues of s without wrapping them.
func ValidateFields(s interface{}) []errors.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return []errors.FieldError{{Field: "", Message: err.Error()}}
	}

	fields := make([]errors.FieldError, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields = append(fields, errors.FieldError{
			Field:   fieldError.Field(),
			Message: getFieldErrorMessage(fieldError),
		})
	}
	return fields
}

func errorFromFields(fields []errors.FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return errors.NewFieldValidationError(fields)
}

// getFieldErrorMessage returns a user-friendly error message for a field validation error
func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "numeric":
		return fmt.Sprintf("%s must be a valid number", field)
	case "e164":
		return fmt.Sprintf("%s must be a valid phone number", field)
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}
