// Package forms binds untrusted request values to typed records.
// Validation never fails with an error: the outcome is a Result carrying
// either the cleaned data or per-field messages.
package forms

import (
	"errors"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report failures under the form field name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" && name != "-" {
			return name
		}
		return strings.ToLower(f.Name)
	})
	return v
}

// Errors maps a field name to its validation messages.
type Errors map[string][]string

// Add records a message for field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Has reports whether field has any messages.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Get returns the messages for field.
func (e Errors) Get(field string) []string {
	return e[field]
}

// Result is the outcome of binding a form.
type Result[T any] struct {
	Data   T
	Errors Errors
	// Values echoes the submitted input for re-display.
	Values url.Values
}

// OK reports whether validation passed.
func (r Result[T]) OK() bool {
	return len(r.Errors) == 0
}

func newResult[T any](values url.Values) Result[T] {
	if values == nil {
		values = url.Values{}
	}
	return Result[T]{Errors: Errors{}, Values: values}
}

// check runs the struct tag rules and records failures keyed by the form tag name.
func check(v interface{}, errs Errors) {
	err := validate.Struct(v)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("__all__", err.Error())
		return
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return "Ensure this value has at most " + fe.Param() + " characters."
	case "gt", "min":
		return "Select a valid choice."
	default:
		return "Enter a valid value."
	}
}
