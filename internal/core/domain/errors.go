package domain

import (
	"errors"
	"strings"
)

// Kind classifies an Error into one member of a closed taxonomy. The HTTP
// boundary switches exhaustively on it; nothing else inspects error strings.
type Kind int

const (
	KindUnclassified Kind = iota
	KindValidation
	KindConflict
	KindInvalidCredentials
	KindTokenInvalid
	KindTokenExpired
	KindMalformedRequest
	KindStoreUnavailable
	KindMalformedIdentifier
	KindNotFound
	KindForbidden
	KindUnsupportedOperation
	KindInvalidOperationInput
	KindHashingFailure
	KindVerificationFailure
	KindTokenIssuanceFailure
	KindInvalidResponseContent
)

// Error is the single error type crossing component boundaries. Message and
// Data are client-facing; Err is the wrapped cause and is only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Data    any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an Error with the given kind and client-facing message.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error that carries an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewValidationError aggregates every violated-field message into one error.
func NewValidationError(messages ...string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "Validation Error",
		Data:    strings.Join(messages, ", "),
	}
}

// KindOf extracts the Kind from err, or KindUnclassified when err is not a
// domain error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnclassified
}

// Sentinel errors shared by the auth flows. ErrUserExists keeps the uniform
// registration message regardless of whether the pre-check or the unique
// index caught the duplicate.
var (
	ErrUserExists         = E(KindConflict, "User already exists")
	ErrUserNotFound       = E(KindNotFound, "User not found")
	ErrInvalidCredentials = E(KindInvalidCredentials, "Invalid email or password")
)
