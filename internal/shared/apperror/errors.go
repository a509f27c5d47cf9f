// Package apperror defines the error taxonomy shared by every layer of the service.
// Each Kind maps to exactly one HTTP status at the transport boundary.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	// KindUnknown is the zero value; errors of this kind are treated as internal failures.
	KindUnknown Kind = iota
	// KindNotFound means the requested resource does not exist.
	KindNotFound
	// KindExternalAPI means the upstream market data provider failed.
	KindExternalAPI
	// KindDatabase means the storage layer failed.
	KindDatabase
	// KindInvalidInput means the caller sent malformed parameters.
	KindInvalidInput
)

var (
	// ErrNotFound matches any error of KindNotFound via errors.Is.
	ErrNotFound = &Error{Kind: KindNotFound}

	// ErrExternalAPI matches any error of KindExternalAPI via errors.Is.
	ErrExternalAPI = &Error{Kind: KindExternalAPI}

	// ErrDatabase matches any error of KindDatabase via errors.Is.
	ErrDatabase = &Error{Kind: KindDatabase}

	// ErrInvalidInput matches any error of KindInvalidInput via errors.Is.
	ErrInvalidInput = &Error{Kind: KindInvalidInput}
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindExternalAPI:
		return "external_api"
	case KindDatabase:
		return "database"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindExternalAPI:
		return http.StatusBadGateway
	case KindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified application error. Detail is safe to show to API clients;
// Err carries the underlying cause for logs.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Detail != "":
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so the
// package-level sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NotFound returns a KindNotFound error.
func NotFound(detail string) *Error {
	return &Error{Kind: KindNotFound, Detail: detail}
}

// ExternalAPI wraps err as a KindExternalAPI error.
func ExternalAPI(detail string, err error) *Error {
	return &Error{Kind: KindExternalAPI, Detail: detail, Err: err}
}

// Database wraps err as a KindDatabase error.
func Database(detail string, err error) *Error {
	return &Error{Kind: KindDatabase, Detail: detail, Err: err}
}

// InvalidInput returns a KindInvalidInput error.
func InvalidInput(detail string) *Error {
	return &Error{Kind: KindInvalidInput, Detail: detail}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// Classify returns err unchanged when it already carries a kind, and otherwise
// wraps it with the given fallback kind and detail.
func Classify(err error, fallback Kind, detail string) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != KindUnknown {
		return err
	}
	return &Error{Kind: fallback, Detail: detail, Err: err}
}
