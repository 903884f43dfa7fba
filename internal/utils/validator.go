package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground struct-tag validation for request DTOs
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()

	// Report json field names instead of Go field names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: validate}
}

// Validate validates struct tags on s
func (v *Validator) Validate(s interface{}) error {
	return v.validate.Struct(s)
}

// Var validates a single value against a tag expression, e.g. "required,alphanum"
func (v *Validator) Var(value interface{}, tag string) error {
	return v.validate.Var(value, tag)
}
