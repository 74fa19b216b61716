// Package validator adapts go-playground/validator to echo and renders
// field errors as user-facing messages.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	domainerrors "quizauth/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New builds a validator that reports fields by their JSON names.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}

		return name
	})

	return &CustomValidator{validate: v}
}

// Validate checks i and returns ErrValidationFailed carrying the first field error.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return domainerrors.ErrValidationFailed.WithMessage(fieldMessage(fieldErrs[0]))
}

func fieldMessage(fe validator.FieldError) string {
	field := fmt.Sprintf("%q", fe.Field())

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "alphanum":
		return field + " must only contain alpha-numeric characters"
	case "min":
		return fmt.Sprintf("%s length must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s length must be less than or equal to %s characters long", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on the %q rule", field, fe.Tag())
	}
}
