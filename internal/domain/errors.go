package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownResource    = errors.New("unknown resource kind")
	ErrSubmitInFlight     = errors.New("a submission is already in progress")
	ErrWizardIncomplete   = errors.New("wizard has not reached the final step")
)

// FailureKind classifies a failure from the remote HR backend or from
// client-side validation.
type FailureKind string

const (
	FailureNetwork          FailureKind = "network"
	FailureTimeout          FailureKind = "timeout"
	FailureValidation       FailureKind = "validation"
	FailureRemoteValidation FailureKind = "remote_validation"
	FailureNotFound         FailureKind = "not_found"
	FailureServer           FailureKind = "server"
	FailureUnknown          FailureKind = "unknown"
)

// Failure carries a human-readable reason plus a status classification. It is
// the only error shape the screen layer turns into user-visible messages.
type Failure struct {
	Kind   FailureKind
	Reason string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Reason)
}

// Is lets errors.Is match a not-found Failure against ErrNotFound.
func (f *Failure) Is(target error) bool {
	return target == ErrNotFound && f.Kind == FailureNotFound
}

// NewFailure builds a Failure of the given kind.
func NewFailure(kind FailureKind, reason string) *Failure {
	return &Failure{Kind: kind, Reason: reason}
}

// Validationf builds a client-side validation Failure.
func Validationf(format string, args ...any) *Failure {
	return &Failure{Kind: FailureValidation, Reason: fmt.Sprintf(format, args...)}
}

// FailureOf coerces any error into a Failure, defaulting to FailureUnknown so
// unexpected collaborator errors still surface with a readable reason.
func FailureOf(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Kind: FailureUnknown, Reason: err.Error()}
}
