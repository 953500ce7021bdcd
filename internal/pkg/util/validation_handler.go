package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidationError first failing field of a DTO.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field [%s] failed rule [%s]", e.Field, e.Rule)
}

// ValidateDTO runs the struct's validate tags, reporting the first failure.
func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			return &ValidationError{Field: vErrs[0].Field(), Rule: vErrs[0].Tag()}
		}
		return err
	}
	return nil
}
