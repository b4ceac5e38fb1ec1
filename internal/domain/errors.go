package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrRequired       = errors.New("required field missing")
	ErrInvalidFormat  = errors.New("invalid format")
	ErrUnknownSortKey = errors.New("unknown sort column")
)

// ErrorKind classifies a failure for the RPC boundary.
type ErrorKind int

const (
	// KindValidation is missing or malformed required input. Never retried.
	KindValidation ErrorKind = iota + 1
	// KindDecode is a malformed decimal, enum or flag value.
	KindDecode
	// KindStore is a query execution failure.
	KindStore
	// KindPartialField is a single auxiliary field that failed to parse.
	// It is logged and absorbed, never returned to a caller.
	KindPartialField
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDecode:
		return "decode"
	case KindStore:
		return "store"
	case KindPartialField:
		return "partial_field"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the classified error type produced by the query pipeline.
type Error struct {
	Kind  ErrorKind
	Op    string
	Field string
	Err   error
}

func (e *Error) Error() string {
	switch {
	case e.Field != "" && e.Op != "":
		return fmt.Sprintf("%s: %s: %s: %v", e.Op, e.Kind, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Field, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports a missing or malformed request field.
func Validation(field string, err error) error {
	return &Error{Kind: KindValidation, Field: field, Err: err}
}

// Validationf is Validation with a formatted cause wrapping ErrInvalidFormat.
func Validationf(field, format string, args ...any) error {
	return &Error{Kind: KindValidation, Field: field, Err: fmt.Errorf("%w: "+format, append([]any{ErrInvalidFormat}, args...)...)}
}

// Decode reports a value that could not be decoded into its domain type.
func Decode(field string, err error) error {
	return &Error{Kind: KindDecode, Field: field, Err: err}
}

// Store reports a failed store round-trip for the named operation.
func Store(op string, err error) error {
	return &Error{Kind: KindStore, Op: op, Err: err}
}

// PartialField reports an auxiliary field that was dropped from a record.
func PartialField(field string, err error) error {
	return &Error{Kind: KindPartialField, Field: field, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
