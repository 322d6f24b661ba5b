// Package errors defines the error kinds returned by the client and the
// config loader. Transport errors are never wrapped and do not appear here.
package errors

import (
	"errors"
	"fmt"
)

// Error kinds, matched with Is.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrSerialization = errors.New("serialization error")
	ErrValidation    = errors.New("validation error")
)

// SerializationError reports a payload that could not be encoded as JSON.
// No request was sent.
type SerializationError struct {
	Method string
	Path   string
	Err    error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("%v: encode %s %s payload: %v", ErrSerialization, e.Method, e.Path, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// Is matches ErrSerialization.
func (e *SerializationError) Is(target error) bool {
	return target == ErrSerialization
}

// WrapError tags err with the kind errType. Both stay reachable through
// errors.Is and errors.As.
func WrapError(err error, errType error, message string) error {
	return fmt.Errorf("%w: %s: %w", errType, message, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
