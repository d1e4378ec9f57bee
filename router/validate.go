package router

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// SelfValidator is implemented by request types that validate themselves.
type SelfValidator interface {
	Validate() error
}

// Validator validates any request.
type Validator interface {
	Validate(req any) error
}

// StructValidator validates requests against their `validate` struct tags.
// Failures are reported as a 422 ProblemDetail listing every field.
type StructValidator struct {
	validate *validator.Validate
}

// NewStructValidator returns a StructValidator that names fields by their
// wire names.
func NewStructValidator() *StructValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(wireName)
	return &StructValidator{validate: v}
}

// Validate implements Validator. Non-struct requests are not validated.
func (s *StructValidator) Validate(req any) error {
	t := reflect.TypeOf(req)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	err := s.validate.Struct(req)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	problem := &ProblemDetail{
		Type:   "about:blank",
		Title:  http.StatusText(http.StatusUnprocessableEntity),
		Status: http.StatusUnprocessableEntity,
		Detail: "request validation failed",
	}
	for _, fe := range fieldErrs {
		problem.Errors = append(problem.Errors, ValidationError{
			Field:   fe.Field(),
			Message: formatValidationError(fe),
			Value:   fe.Value(),
		})
	}
	return problem
}

// wireName names a field the way clients see it: by its parameter tag,
// then its json name, then its Go name.
func wireName(f reflect.StructField) string {
	if len(fieldBindings(f)) > 0 {
		return paramName(f)
	}
	name, _ := tagOptions(f.Tag.Get("json"))
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must have length %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
