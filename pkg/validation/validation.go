// Package validation holds the field constraints shared by the ranking and
// item forms and turns validator failures into per-field messages.
package validation

import (
	"fmt"
	"html"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// FieldErrors maps a JSON field name to a human-readable message.
type FieldErrors map[string]string

func (fe FieldErrors) Add(field, message string) {
	if _, exists := fe[field]; !exists {
		fe[field] = message
	}
}

func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

// Error joins the messages in field order so output is stable.
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, fe[field])
	}
	return strings.Join(messages, "; ")
}

type Validator struct {
	validate *validator.Validate
	policy   *bluemonday.Policy
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	return &Validator{
		validate: v,
		policy:   bluemonday.StrictPolicy(),
	}
}

// Struct validates every field of s.
func (v *Validator) Struct(s interface{}) FieldErrors {
	return v.collect(v.validate.Struct(s))
}

// Partial validates only the named struct fields, for partial updates.
func (v *Validator) Partial(s interface{}, fields ...string) FieldErrors {
	if len(fields) == 0 {
		return FieldErrors{}
	}
	return v.collect(v.validate.StructPartial(s, fields...))
}

// Sanitize strips markup from free text and trims surrounding whitespace.
func (v *Validator) Sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(v.policy.Sanitize(s)))
}

func (v *Validator) collect(err error) FieldErrors {
	result := FieldErrors{}
	if err == nil {
		return result
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		result.Add("_", err.Error())
		return result
	}

	for _, fe := range validationErrors {
		result.Add(fe.Field(), message(fe))
	}
	return result
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "http_url", "url":
		return fmt.Sprintf("%s must be a valid http(s) URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
