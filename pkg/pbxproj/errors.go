package pbxproj

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingKey is wrapped by a DecodeError for a required attribute
	// absent from the input mapping.
	ErrMissingKey = errors.New("missing key")
	// ErrTypeMismatch is wrapped by a DecodeError for an attribute whose
	// value does not have the expected shape.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrEmptyReference is wrapped by a DecodeError for an object whose
	// reference is the empty string.
	ErrEmptyReference = errors.New("empty reference")
	// ErrUnknownISA is returned when no decoder is registered for an isa.
	ErrUnknownISA = errors.New("unknown isa")
)

// DecodeError describes why an attribute mapping could not be decoded into
// an object. Err is ErrMissingKey, ErrTypeMismatch or ErrEmptyReference;
// Key is empty for the latter.
type DecodeError struct {
	ISA       string
	Reference Reference
	Key       string
	Expected  string // set for ErrTypeMismatch
	Actual    string // set for ErrTypeMismatch
	Err       error
}

func (e *DecodeError) Error() string {
	subject := e.ISA
	if subject == "" {
		subject = "object"
	}
	if !e.Reference.IsZero() {
		subject = fmt.Sprintf("%s %s", subject, e.Reference)
	}
	if e.Key == "" {
		return fmt.Sprintf("decode %s: %v", subject, e.Err)
	}
	if errors.Is(e.Err, ErrTypeMismatch) {
		return fmt.Sprintf("decode %s: key %q: %v: want %s, got %s", subject, e.Key, e.Err, e.Expected, e.Actual)
	}
	return fmt.Sprintf("decode %s: key %q: %v", subject, e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ErrDuplicateReference is returned when two objects of one document share
// a reference.
var ErrDuplicateReference = errors.New("duplicate reference")
