// Package utils provides utility functions for the NBT library.
package utils

import "fmt"

// ErrorKind classifies an NBTError into one of the codec's closed set of
// failure modes.
type ErrorKind int

// Error kinds produced by the codec.
const (
	KindUnexpectedEnd ErrorKind = iota
	KindInvalidTagKind
	KindInvalidEncoding
	KindDuplicateName
	KindListContentMismatch
	KindValueOutOfRange
	KindFormatError
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnexpectedEnd:
		return "UnexpectedEnd"
	case KindInvalidTagKind:
		return "InvalidTagKind"
	case KindInvalidEncoding:
		return "InvalidEncoding"
	case KindDuplicateName:
		return "DuplicateName"
	case KindListContentMismatch:
		return "ListContentMismatch"
	case KindValueOutOfRange:
		return "ValueOutOfRange"
	case KindFormatError:
		return "FormatError"
	case KindIO:
		return "IoError"
	default:
		return "Unknown"
	}
}

// NBTError is a structured codec error.
type NBTError struct {
	Kind    ErrorKind
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *NBTError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Context)
}

// Unwrap provides compatibility with errors.Unwrap/Is/As.
func (e *NBTError) Unwrap() error {
	return e.Cause
}

// WrapError creates a contextual error of the given kind. Returns nil when
// cause is nil, so callers can write `return WrapError(...)` unconditionally.
func WrapError(kind ErrorKind, context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &NBTError{Kind: kind, Context: context, Cause: cause}
}

// NewError creates a contextual error of the given kind with no separate cause.
func NewError(kind ErrorKind, format string, args ...interface{}) error {
	return &NBTError{Kind: kind, Context: fmt.Sprintf(format, args...)}
}
