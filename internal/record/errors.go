package record

import (
	"errors"
	"fmt"
)

// Error kinds shared by every layer of the store. Callers match them with
// errors.Is.
//
// ErrNotFound and ErrAlreadyExists are expected outcomes of lookups and
// inserts. ErrCorruptData and ErrSchemaMismatch mean the persisted file and
// the code disagree; they are never transient and must not be retried.
var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrCorruptData    = errors.New("corrupt data")
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrInvalidRecord is returned for a record without an identity key.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrReservedToken is returned when a name or value contains one of the
	// characters reserved by the file format.
	ErrReservedToken = errors.New("value contains reserved token")
)

// DataError describes where a decoding problem was found.
type DataError struct {
	Kind   error  // one of the Err* kinds above
	Path   string // backing file, when known
	Record int    // 1-based record index, 0 when unknown
	Field  string
	Reason string
}

func (e *DataError) Error() string {
	msg := e.Kind.Error()
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Record > 0 {
		msg += fmt.Sprintf(" (record %d)", e.Record)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" field %q", e.Field)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Unwrap exposes the kind so errors.Is(err, ErrCorruptData) works.
func (e *DataError) Unwrap() error { return e.Kind }

// IsFatal reports whether err is a data or schema inconsistency that should
// abort the current operation instead of being shown as a user message.
func IsFatal(err error) bool {
	return errors.Is(err, ErrCorruptData) || errors.Is(err, ErrSchemaMismatch)
}

// InFile reports whether err was found while reading a backing file, as
// opposed to while encoding a value supplied by the caller.
func InFile(err error) bool {
	var de *DataError
	return errors.As(err, &de) && de.Path != ""
}
