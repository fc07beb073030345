package model

import (
	"errors"
	"fmt"
)

// Error kinds of a compression check.
// A CheckError always wraps exactly one of these, so callers can use
// errors.Is to classify a failure.
var (
	// ErrMissingParameter is returned when no target URL was supplied.
	ErrMissingParameter = errors.New("URL parameter is required")

	// ErrInvalidURL is returned when the target is not a valid absolute URL.
	ErrInvalidURL = errors.New("invalid URL provided")

	// ErrTimeout is returned when the upstream does not answer before the
	// fetch deadline.
	ErrTimeout = errors.New("request timeout")

	// ErrNetwork is returned for transport failures where no response was
	// received (DNS, connection refused or reset, TLS).
	ErrNetwork = errors.New("network error")

	// ErrHTTPStatus is returned when the upstream answered with a
	// non-success status.
	ErrHTTPStatus = errors.New("upstream returned a non-success status")

	// ErrAccessDenied is returned when the upstream answered 403, which
	// usually means an edge-protection service blocked the request.
	// It also matches ErrHTTPStatus.
	ErrAccessDenied = errors.New("access denied by upstream")
)

// CheckError is a classified failure of a compression check.
type CheckError struct {
	// Kind is one of the Err* sentinels of this package.
	Kind error

	// Status is the upstream status code for ErrHTTPStatus and
	// ErrAccessDenied, and 0 otherwise.
	Status int

	// Detail is a human-readable explanation suitable for callers.
	Detail string

	// Cause is the underlying error, if any.
	Cause error
}

// NewCheckError creates a CheckError of the given kind.
func NewCheckError(kind error, detail string, cause error) *CheckError {
	return &CheckError{Kind: kind, Detail: detail, Cause: cause}
}

// NewHTTPStatusError creates the error for a non-success upstream status.
// A 403 is classified as ErrAccessDenied.
func NewHTTPStatusError(status int) *CheckError {
	if status == 403 {
		return &CheckError{
			Kind:   ErrAccessDenied,
			Status: status,
			Detail: "Access Denied (403 Forbidden). The website is likely protected by a security service that is blocking our tool.",
		}
	}
	return &CheckError{
		Kind:   ErrHTTPStatus,
		Status: status,
		Detail: fmt.Sprintf("The server responded with status: %d.", status),
	}
}

// Error implements error.
func (e *CheckError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := "check failed"
	if e.Kind != nil {
		msg = e.Kind.Error()
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *CheckError) Unwrap() []error {
	if e == nil {
		return nil
	}
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Is reports ErrAccessDenied failures as ErrHTTPStatus too.
func (e *CheckError) Is(target error) bool {
	return target == ErrHTTPStatus && e != nil && e.Kind == ErrAccessDenied
}
