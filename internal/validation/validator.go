// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// CodeValidation is the API error code of every validation failure.
const CodeValidation = "VALIDATION_ERROR"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one failed constraint.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Value   interface{}
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// RequestValidationError collects the field errors of one struct.
type RequestValidationError struct {
	errors []FieldError
}

// Errors returns the individual field errors.
func (ve *RequestValidationError) Errors() []FieldError {
	return ve.errors
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.errors))
	for i, fe := range ve.errors {
		messages[i] = fe.Message
	}
	return strings.Join(messages, "; ")
}

// APIError mirrors models.APIError without importing it.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError converts the error to the API error format.
func (ve *RequestValidationError) ToAPIError() *APIError {
	switch len(ve.errors) {
	case 0:
		return &APIError{Code: CodeValidation, Message: "Validation failed"}
	case 1:
		fe := ve.errors[0]
		return &APIError{
			Code:    CodeValidation,
			Message: fe.Message,
			Details: map[string]interface{}{
				"field": fe.Field,
				"tag":   fe.Tag,
				"value": fe.Value,
			},
		}
	}

	fields := make([]map[string]interface{}, len(ve.errors))
	for i, fe := range ve.errors {
		fields[i] = map[string]interface{}{
			"field":   fe.Field,
			"tag":     fe.Tag,
			"message": fe.Message,
		}
	}
	return &APIError{
		Code:    CodeValidation,
		Message: ve.Error(),
		Details: map[string]interface{}{"fields": fields},
	}
}

// GetValidator returns the shared validator.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(fieldName)
	})
	return validate
}

// fieldName reports a struct field by its query or json name.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"query", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// ValidateStruct validates s. It returns nil when s is valid.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{errors: []FieldError{{
			Field:   "unknown",
			Tag:     "unknown",
			Message: err.Error(),
		}}}
	}

	return convert(fieldErrs, "")
}

// NewFieldError builds a single-field error for checks done outside the
// validator, such as query parsing.
func NewFieldError(field, tag string, value interface{}, message string) *RequestValidationError {
	return &RequestValidationError{errors: []FieldError{{
		Field:   field,
		Tag:     tag,
		Value:   value,
		Message: message,
	}}}
}

// ValidateVar validates a single value against tag, reporting failures
// under field. It returns nil when the value is valid.
func ValidateVar(field string, value interface{}, tag string) *RequestValidationError {
	err := GetValidator().Var(value, tag)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{errors: []FieldError{{
			Field:   field,
			Tag:     "unknown",
			Value:   value,
			Message: err.Error(),
		}}}
	}
	return convert(fieldErrs, field)
}

// convert translates validator errors. A non-empty field overrides the
// reported field name.
func convert(fieldErrs validator.ValidationErrors, field string) *RequestValidationError {
	out := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		name := fe.Field()
		if field != "" {
			name = field
		}
		out[i] = FieldError{
			Field:   name,
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: translate(fe, name),
		}
	}
	return &RequestValidationError{errors: out}
}

var simpleMessages = map[string]string{
	"required": "%s is required",
}

var paramMessages = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translate(fe validator.FieldError, field string) string {
	tag, param := fe.Tag(), fe.Param()

	if tmpl, ok := simpleMessages[tag]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := paramMessages[tag]; ok {
		return fmt.Sprintf(tmpl, field, param)
	}

	isString := fe.Kind() == reflect.String
	switch {
	case tag == "min" && isString:
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case tag == "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case tag == "max" && isString:
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case tag == "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
