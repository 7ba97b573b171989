package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// FieldError reports the configuration key holding an invalid value.
type FieldError struct {
	Field string
	msg   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.msg)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalid
}

func invalid(field, msg string) error {
	return &FieldError{Field: field, msg: msg}
}
