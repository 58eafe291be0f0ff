// Package validator wraps the go-playground/validator library behind a
// single Validate function with standardized error formatting.
//
// Struct fields opt into validation through tags (e.g. `validate:"required"`).
// When a rule is violated, Validate returns a multi-error chain rooted at
// ErrValidationFailed with one descriptive message per failing field.
package validator

import (
	"errors"
	"fmt"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed is the sentinel placed at the root of every validation
// error chain, allowing callers to detect validation failures with errors.Is
// even when several fields failed at once.
var ErrValidationFailed = errors.New("struct validation failed")

// validate is the package-level validator instance, created on import.
var validate *gvalidator.Validate

// fieldErrFormat describes a single failing field.
//
// Example: "'Destination': value '' does not satisfy the 'required' rule"
const fieldErrFormat = "'%s': value '%v' does not satisfy the '%s' rule"

func init() {
	validate = gvalidator.New(gvalidator.WithRequiredStructEnabled())
}

// formatError converts raw validator errors into the standardized chain.
// Non-validation errors are passed through unchanged.
func formatError(err error) error {
	var validationErrors gvalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := []error{ErrValidationFailed}
	for _, fieldErr := range validationErrors {
		errs = append(errs, fmt.Errorf(fieldErrFormat,
			fieldErr.Field(),
			fieldErr.Value(),
			fieldErr.Tag(),
		))
	}

	return errors.Join(errs...)
}

// Validate checks the given struct against its validation tags. It returns
// nil when every field passes, or an error chain rooted at
// ErrValidationFailed otherwise.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatError(err)
	}

	return nil
}
