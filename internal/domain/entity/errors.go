package entity

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by services and mapped to HTTP statuses at the
// response boundary: validation 400, unauthorized 401, forbidden 403,
// not found 404, anything else 500.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

type taggedError struct {
	kind error
	msg  string
}

func (e *taggedError) Error() string { return e.msg }
func (e *taggedError) Unwrap() error { return e.kind }

// Validationf builds an error matching ErrValidation with a
// caller-facing message.
func Validationf(format string, args ...any) error {
	return &taggedError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

// Unauthorizedf builds an error matching ErrUnauthorized with a
// caller-facing message.
func Unauthorizedf(format string, args ...any) error {
	return &taggedError{kind: ErrUnauthorized, msg: fmt.Sprintf(format, args...)}
}
