package parser

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	UnsupportedScheme ErrorKind = "UnsupportedScheme"
	MalformedBase64   ErrorKind = "MalformedBase64"
	InvalidEncoding   ErrorKind = "InvalidEncoding"
	MissingSeparator  ErrorKind = "MissingSeparator"
	MissingField      ErrorKind = "MissingField"
	InvalidPort       ErrorKind = "InvalidPort"
)

type ParseError struct {
	Kind    ErrorKind
	Scheme  Scheme // empty when the scheme itself was not recognized
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	prefix := string(e.Kind)
	if e.Scheme != "" {
		prefix = fmt.Sprintf("%s %s", e.Scheme, e.Kind)
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", prefix, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// IsKind reports whether err is a *ParseError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == kind
}

func newError(scheme Scheme, kind ErrorKind, cause error, format string, args ...any) error {
	return &ParseError{
		Kind:    kind,
		Scheme:  scheme,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}
