package service

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field to a human-readable message. It satisfies
// error so services can return it through the normal error path; handlers
// unwrap it with errors.As and render a 400 with per-field messages.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "invalid input"
	}
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(fe[f])
	}
	return b.String()
}

// User-facing messages rendered in form error responses.
const (
	msgFieldRequired   = "This field is required."
	msgInvalidEmail    = "Enter a valid email address."
	msgUsernameTaken   = "A user with that username already exists."
	msgISBNTaken       = "A book with that ISBN already exists."
	msgStarsOutOfRange = "Ensure this value is between 1 and 5."
)

var validate = newValidator()

// newValidator builds a validator that reports fields by their json names,
// so FieldErrors keys line up with the request payload.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs tag validation and converts failures to FieldErrors.
func validateStruct(s any) FieldErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"non_field": err.Error()}
	}

	fe := make(FieldErrors, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			fe[e.Field()] = msgFieldRequired
		case "email":
			fe[e.Field()] = msgInvalidEmail
		default:
			fe[e.Field()] = "Enter a valid value."
		}
	}
	return fe
}
