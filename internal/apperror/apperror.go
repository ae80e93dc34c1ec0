// Package apperror defines the error kinds handlers translate into HTTP responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for status mapping.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindDependency
	KindPersistence
)

const genericMessage = "Erreur interne du serveur"

// Error carries a kind, a client-safe message and the wrapped cause.
// Details is optional, short, and safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Details string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return e.Message
	case e.Message == "":
		return e.Err.Error()
	default:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports a missing or malformed client field.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// Auth reports bad credentials or an invalid session.
func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

// NotFound reports a resource that is absent or not owned by the caller.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Dependency wraps a failed call to an external provider.
func Dependency(provider string, err error) *Error {
	return &Error{
		Kind:    KindDependency,
		Message: "Le service " + provider + " est indisponible",
		Details: provider,
		Err:     err,
	}
}

// Persistence wraps a failed record store or blob store operation.
// op names the operation in logs only; clients always get the generic message.
func Persistence(op string, err error) *Error {
	return &Error{Kind: KindPersistence, Err: fmt.Errorf("%s: %w", op, err)}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StatusOf maps err to an HTTP status code.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message a client may see for err.
func PublicMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return genericMessage
	}
	switch e.Kind {
	case KindValidation, KindAuth, KindNotFound, KindDependency:
		return e.Message
	default:
		return genericMessage
	}
}

// PublicDetails returns the optional details string for err.
func PublicDetails(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return ""
}
