package codec

import (
	"errors"
	"fmt"

	snapstore "github.com/tarantool/go-snapstore"
)

var (
	// ErrUnknownOperation is returned when the operation is unknown.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrUnknownErrorKind is returned when a result carries an unknown error kind.
	ErrUnknownErrorKind = errors.New("unknown error kind")
	// ErrInvalidArrayLength is returned when an encoded operation has the wrong arity.
	ErrInvalidArrayLength = errors.New("invalid array length")
)

// DecodingError represents an error that occurs during decoding operations.
type DecodingError struct {
	ObjectType string
	Text       string
	Err        error
}

// Error returns the error message.
func (e DecodingError) Error() string {
	suffix := e.ObjectType
	if e.Text != "" {
		suffix = fmt.Sprintf("%s, %s", suffix, e.Text)
	}

	return fmt.Sprintf("failed to decode %s: %s", suffix, e.Err)
}

func (e DecodingError) Unwrap() error {
	return e.Err
}

func errDecodeOperation(text string, err error) error {
	if err == nil {
		return nil
	}

	return DecodingError{ObjectType: "operation", Text: text, Err: err}
}

func errDecodeResult(text string, err error) error {
	if err == nil {
		return nil
	}

	return DecodingError{ObjectType: "result", Text: text, Err: err}
}

// EncodingError represents an error that occurs during encoding operations.
type EncodingError struct {
	ObjectType string
	Text       string
	Err        error
}

// Error returns the error message.
func (e EncodingError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("failed to encode %s: %s", e.ObjectType, e.Err)
	}

	return fmt.Sprintf("failed to encode %s, %s: %s", e.ObjectType, e.Text, e.Err)
}

func (e EncodingError) Unwrap() error {
	return e.Err
}

func errEncodeOperation(text string, err error) error {
	if err == nil {
		return nil
	}

	return EncodingError{ObjectType: "operation", Text: text, Err: err}
}

func errEncodeResult(text string, err error) error {
	if err == nil {
		return nil
	}

	return EncodingError{ObjectType: "result", Text: text, Err: err}
}

// ResultError is the error of a decoded result. It matches the store
// sentinel of its kind with errors.Is.
type ResultError struct {
	Kind    snapstore.ErrorKind
	Message string
}

// Error returns the message of the original error.
func (e ResultError) Error() string {
	return e.Message
}

// Unwrap returns the store sentinel for Kind, nil for unknown kinds.
func (e ResultError) Unwrap() error {
	return e.Kind.Err()
}
