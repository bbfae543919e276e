// Package validation wires go-playground/validator into Echo so request
// structs with validate tags are checked before any storage call.
package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// RequestValidator adapts validator.Validate to echo.Validator.
type RequestValidator struct {
	validate *validator.Validate
}

// New returns a validator ready to be assigned to echo.Echo.Validator.
func New() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks the struct's validate tags.
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// Details flattens a validation error into per-field messages for the
// response body.
func Details(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag()))
	}
	return details
}
