package services

import (
	"errors"
	"strings"
)

var (
	ErrNotFound               = errors.New("not found")
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrRegistrationIncomplete = errors.New("registration is not complete")

	ErrCodeInvalid      = errors.New("code invalid")
	ErrCodeExpired      = errors.New("code expired")
	ErrAlreadyVerified  = errors.New("user is already verified")
	ErrActiveCodeExists = errors.New("a valid verification code has already been sent")
)

// FieldError is one field-scoped validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the ordered result of a validation pipeline. It is a
// normal error value so services can return it alongside other failures.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(msgs, "; ")
}

// AsValidation unwraps err into ValidationErrors if that is what it is.
func AsValidation(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
