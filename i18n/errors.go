package i18n

import (
	"errors"
	"fmt"
)

// TranslatableError represents an error whose message is looked up by key.
type TranslatableError interface {
	error
	Key() string
	Args() []interface{}
	Unwrap() error
	WithArgs(args ...interface{}) TranslatableError
	Wrap(err error) TranslatableError
}

// TrError is a keyed error with optional format arguments and a wrapped cause.
// Copies made through WithArgs and Wrap keep the sentinel of the original, so
// errors.Is matches any copy against the value it was derived from.
//
// Example usage:
//
//	var ErrInvalidRoute = NewError("dispatch.error.invalid_route_spec")
//	err := ErrInvalidRoute.WithArgs("deploy||x")
//	errors.Is(err, ErrInvalidRoute) // true
type TrError struct {
	sentinel error
	key      string
	args     []interface{}
	wrapped  error
	bundle   *Bundle
}

// NewError creates a new error formatted through the default bundle.
func NewError(key string) *TrError {
	return &TrError{
		sentinel: errors.New(key),
		key:      key,
	}
}

// Error returns the translated message, formatted with args if provided.
func (e *TrError) Error() string {
	b := e.bundle
	if b == nil {
		b = Default()
	}

	msg := b.T(e.key, e.args...)
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", msg, e.wrapped)
	}

	return msg
}

// WithArgs returns a copy of the error with format arguments.
func (e *TrError) WithArgs(args ...interface{}) TranslatableError {
	return &TrError{
		sentinel: e.sentinel,
		key:      e.key,
		args:     args,
		wrapped:  e.wrapped,
		bundle:   e.bundle,
	}
}

// Wrap returns a copy of the error wrapping err.
func (e *TrError) Wrap(err error) TranslatableError {
	return &TrError{
		sentinel: e.sentinel,
		key:      e.key,
		args:     e.args,
		wrapped:  err,
		bundle:   e.bundle,
	}
}

// WithBundle returns a copy of the error formatted through b.
func (e *TrError) WithBundle(b *Bundle) *TrError {
	return &TrError{
		sentinel: e.sentinel,
		key:      e.key,
		args:     e.args,
		wrapped:  e.wrapped,
		bundle:   b,
	}
}

// Is implements errors.Is by comparing sentinels.
func (e *TrError) Is(target error) bool {
	if t, ok := target.(*TrError); ok {
		return e.sentinel == t.sentinel
	}

	return target == e.sentinel
}

// Key returns the translation key.
func (e *TrError) Key() string {
	return e.key
}

// Args returns the format arguments.
func (e *TrError) Args() []interface{} {
	return e.args
}

// Unwrap returns the wrapped error.
func (e *TrError) Unwrap() error {
	return e.wrapped
}
