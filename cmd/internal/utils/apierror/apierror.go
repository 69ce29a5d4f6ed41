package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is what services hand back to routes. It serialises as
// {"statusCode": ..., "message": ...}.
type ErrorResponse interface {
	error
	Code() int
}

type simpleError struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Details    []string `json:"details,omitempty"`
}

func (e *simpleError) Error() string {
	return e.Message
}

func (e *simpleError) Code() int {
	return e.StatusCode
}

func NewSimple(code int, message string) ErrorResponse {
	return &simpleError{StatusCode: code, Message: message}
}

var (
	InvalidSessionError = NewSimple(http.StatusUnauthorized, "Invalid session")
	NotFoundError       = NewSimple(http.StatusNotFound, "No RPD register found")
	MalformedBodyError  = NewSimple(http.StatusBadRequest, "Malformed body")
	InvalidDateError    = NewSimple(http.StatusBadRequest, "Invalid date")
	InternalServerError = NewSimple(http.StatusInternalServerError, "Internal server error")
)

func NewMissingParamError(name string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Missing required parameter '%s'", name))
}

func NewInvalidParamTypeError(name, kind string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Parameter '%s' must be of type %s", name, kind))
}

// FromUnhandled surfaces an unexpected failure as a 500 carrying its message.
func FromUnhandled(err error) ErrorResponse {
	if err == nil {
		return InternalServerError
	}
	return NewSimple(http.StatusInternalServerError, err.Error())
}

func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	details := make([]string, len(verrs))
	for i, fe := range verrs {
		details[i] = fmt.Sprintf("field '%s' failed on '%s'", fe.Field(), fe.Tag())
	}
	return &simpleError{
		StatusCode: http.StatusBadRequest,
		Message:    "Validation failed",
		Details:    details,
	}
}
