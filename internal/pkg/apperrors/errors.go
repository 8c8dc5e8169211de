package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so the HTTP boundary can map it to a
// stable status code and a safe client message.
type Kind string

const (
	KindInvalidInput    Kind = "invalid_input"
	KindRateLimited     Kind = "rate_limited"
	KindOTPNotFound     Kind = "otp_not_found"
	KindInvalidOTP      Kind = "invalid_otp"
	KindTooManyAttempts Kind = "too_many_attempts"
	KindInvalidToken    Kind = "invalid_token"
	KindUserNotFound    Kind = "user_not_found"
	KindForbidden       Kind = "forbidden"
	KindConflict        Kind = "conflict"
	KindInternal        Kind = "internal"
)

// AppError is a domain error with a kind and a client-facing message.
// Infrastructure failures are wrapped with KindInternal and keep the
// underlying error for logging; the client only ever sees the message.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a domain error with the given kind and message
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Wrap attaches a kind and message to an underlying error
func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// Internal wraps an infrastructure failure. These must never be
// collapsed into domain kinds like KindOTPNotFound.
func Internal(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal when err carries none
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// MessageOf returns the client-facing message of err. Internal errors
// get a generic message so no internal detail leaks to the client.
func MessageOf(err error) string {
	if KindOf(err) == KindInternal {
		return "Internal server error"
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}

// StatusOf maps the error kind to an HTTP status code
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindInvalidInput, KindInvalidOTP, KindOTPNotFound, KindTooManyAttempts, KindConflict:
		return http.StatusBadRequest
	case KindInvalidToken:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindUserNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
