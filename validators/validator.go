package validators

import "github.com/go-playground/validator/v10"

// RequestValidator adapts go-playground/validator to Echo's Validator
// interface.
type RequestValidator struct {
	validate *validator.Validate
}

// NewValidator creates a RequestValidator with the default tag rules
func NewValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks a bound request struct against its validate tags
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
