package singbox

import (
	"errors"
	"fmt"
)

type StoreErrorKind string

const (
	StorageReadFailure   StoreErrorKind = "StorageReadFailure"
	StorageWriteFailure  StoreErrorKind = "StorageWriteFailure"
	DocumentParseFailure StoreErrorKind = "DocumentParseFailure"
	SlotNotFound         StoreErrorKind = "SlotNotFound"
)

// StoreError reports a failure reading, parsing or writing the sing-box
// configuration document.
type StoreError struct {
	Kind  StoreErrorKind
	Path  string
	Cause error
}

func (e *StoreError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := string(e.Kind)
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *StoreError) Unwrap() error { return e.Cause }

// IsStoreKind reports whether err is a *StoreError of the given kind.
func IsStoreKind(err error, kind StoreErrorKind) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Kind == kind
}
