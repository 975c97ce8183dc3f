// Package action defines the result contract every write action returns.
// A Result is an explicit tagged union: callers branch on Kind before reading
// payload fields, so success and failure can never be conflated by probing
// for the presence of a message.
package action

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind discriminates the two shapes of a Result.
type Kind string

const (
	KindOK    Kind = "ok"
	KindError Kind = "error"
)

// FieldErrors maps a field name (its JSON name, as rendered under the form
// input) to the list of messages for that field.
type FieldErrors map[string][]string

// Result is the tagged success/error union returned by create/update/delete
// actions. Exactly one shape is populated per call:
//
//	ok:    Data, Message, optionally RedirectTo
//	error: Message, optionally Errors (field-level) and NotFound
type Result[T any] struct {
	Kind       Kind        `json:"kind"`
	Data       *T          `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	RedirectTo string      `json:"redirectTo,omitempty"`
	Errors     FieldErrors `json:"errors,omitempty"`
	NotFound   bool        `json:"notFound,omitempty"`
}

// OK builds a success result carrying the acted-on entity.
func OK[T any](data T, message string) Result[T] {
	return Result[T]{Kind: KindOK, Data: &data, Message: message}
}

// Redirect builds a success result that additionally tells the caller where
// to navigate. Post-create navigation is success, not an error signal.
func Redirect[T any](data T, message, to string) Result[T] {
	r := OK(data, message)
	r.RedirectTo = to
	return r
}

// Done builds a success result with no payload (delete flows).
func Done[T any](message string) Result[T] {
	return Result[T]{Kind: KindOK, Message: message}
}

// Invalid builds a validation failure with field-keyed messages.
func Invalid[T any](errs FieldErrors, message string) Result[T] {
	return Result[T]{Kind: KindError, Message: message, Errors: errs}
}

// NotFound builds the distinct already-gone failure so the UI can say
// "already deleted" instead of "something went wrong".
func NotFound[T any](message string) Result[T] {
	return Result[T]{Kind: KindError, Message: message, NotFound: true}
}

// Fail builds a generic failure with a client-safe message.
func Fail[T any](message string) Result[T] {
	return Result[T]{Kind: KindError, Message: message}
}

// IsOK reports whether the result is the success shape.
func (r Result[T]) IsOK() bool { return r.Kind == KindOK }

// --- Field schema validation ---

// validate is the shared schema validator. Field names are resolved through
// the json tag so the error map keys match what the form renderer uses; the
// two cannot drift because both read the same struct tags.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate runs the struct's validate tags and converts any violations into
// a FieldErrors map. A nil return means the input passed the schema.
func Validate(input any) FieldErrors {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Non-field error (e.g. Validate called on a non-struct); surface it
		// under a generic key rather than panicking mid-request.
		return FieldErrors{"_": {err.Error()}}
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		out[fe.Field()] = append(out[fe.Field()], fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
