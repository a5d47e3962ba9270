package diagnostics

import (
	"errors"
	"fmt"
)

// Kind categorizes failures raised by tracked values, bindings and clocks.
type Kind string

const (
	Configuration  Kind = "configuration"
	StaleReference Kind = "stale_reference"
	Domain         Kind = "domain"
)

func (k Kind) summary() string {
	switch k {
	case Configuration:
		return "Invalid configuration"
	case StaleReference:
		return "Stale geometry reference"
	case Domain:
		return "Input outside valid domain"
	default:
		return "Unknown failure"
	}
}

// Sentinels for errors.Is checks against a Kind.
var (
	ErrConfiguration  = errors.New("configuration error")
	ErrStaleReference = errors.New("stale reference error")
	ErrDomain         = errors.New("domain error")
)

// Error is the concrete error carried through advance/compute/register.
type Error struct {
	Kind    Kind
	Op      string // operation that failed, e.g. "advance"
	Subject string // name of the value, binding or object involved
	Detail  string
	Err     error // optional cause
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.sentinel())
	if e.Subject != "" {
		msg = fmt.Sprintf("%s %q: %s", e.Op, e.Subject, e.sentinel())
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the Kind sentinel so callers need not know the concrete type.
func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case Configuration:
		return ErrConfiguration
	case StaleReference:
		return ErrStaleReference
	default:
		return ErrDomain
	}
}

// Configf builds a ConfigurationError.
func Configf(op, subject, format string, args ...any) *Error {
	return &Error{Kind: Configuration, Op: op, Subject: subject, Detail: fmt.Sprintf(format, args...)}
}

// Stalef builds a StaleReferenceError.
func Stalef(op, subject, format string, args ...any) *Error {
	return &Error{Kind: StaleReference, Op: op, Subject: subject, Detail: fmt.Sprintf(format, args...)}
}

// Domainf builds a DomainError.
func Domainf(op, subject, format string, args ...any) *Error {
	return &Error{Kind: Domain, Op: op, Subject: subject, Detail: fmt.Sprintf(format, args...)}
}

// KindOf reports the Kind of err, if it carries one.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
