package entity

import (
	"errors"
	"fmt"
)

// ErrorKind classifies application errors.
type ErrorKind string

const (
	KindValidation ErrorKind = "VALIDATION"
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindStorage    ErrorKind = "STORAGE"
	KindDatabase   ErrorKind = "DATABASE"
	KindUnknown    ErrorKind = "UNKNOWN"
)

// AppError is an error with a kind used to pick the response status.
type AppError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches any AppError of the same kind, so errors.Is(err, ErrNotFound) works
// for every not-found error regardless of message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation = &AppError{Kind: KindValidation, Message: "validation failed"}
	ErrNotFound   = &AppError{Kind: KindNotFound, Message: "resource not found"}

	// ErrInvalidCredentials is returned for both unknown users and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// NewError creates an AppError with an optional cause.
func NewError(kind ErrorKind, message string, cause ...error) *AppError {
	var c error
	if len(cause) > 0 {
		c = cause[0]
	}
	return &AppError{Kind: kind, Message: message, Cause: c}
}

// ValidationError creates a KindValidation error.
func ValidationError(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError creates a KindNotFound error.
func NotFoundError(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the outermost AppError in the chain.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}
