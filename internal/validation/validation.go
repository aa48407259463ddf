// Package validation turns request binding failures into client errors.
//
// Request structs carry `binding:"..."` tags that gin checks with
// go-playground/validator. Failures are reported per field using the
// field's json (or form) name.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/education-platform/backend/internal/errs"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validatable is implemented by requests with rules that struct tags
// cannot express. Validate runs after binding succeeds.
type Validatable interface {
	Validate() error
}

var setupOnce sync.Once

// Setup makes gin's validator report json/form names instead of Go field names.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
	})
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// FromBindError maps the error returned by gin's ShouldBind* into a 400.
func FromBindError(err error) *errs.HTTPError {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return errs.NewBadRequestError("Validation failed", extractFieldErrors(validationErrors)...)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return errs.NewFieldError(field, fmt.Sprintf("must be of type %s", typeErr.Type))
	}

	var fieldErr *errs.HTTPError
	if errors.As(err, &fieldErr) {
		return fieldErr
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errs.NewBadRequestError("Malformed request body")
	}

	return errs.NewBadRequestError("Invalid request")
}

func extractFieldErrors(validationErrors validator.ValidationErrors) []errs.FieldError {
	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))

	for _, err := range validationErrors {
		var msg string

		switch err.Tag() {
		case "required":
			msg = "This field is required."
		case "min":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("Ensure this field has at least %s characters.", err.Param())
			} else {
				msg = fmt.Sprintf("Ensure this value is greater than or equal to %s.", err.Param())
			}
		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("Ensure this field has no more than %s characters.", err.Param())
			} else {
				msg = fmt.Sprintf("Ensure this value is less than or equal to %s.", err.Param())
			}
		case "oneof":
			msg = fmt.Sprintf("Must be one of: %s.", strings.ReplaceAll(err.Param(), " ", ", "))
		case "email":
			msg = "Enter a valid email address."
		case "url":
			msg = "Enter a valid URL."
		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("Failed on %s=%s.", err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("Failed on %s.", err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: err.Field(),
			Error: msg,
		})
	}

	return fieldErrors
}
