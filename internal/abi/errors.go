package abi

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroCapacity is returned when a Host buffer has no room for the terminator.
	ErrZeroCapacity = errors.New("abi: buffer capacity is zero")

	// ErrNilPointer is returned when the Host passes a nil pointer where memory is required.
	ErrNilPointer = errors.New("abi: nil pointer")

	// ErrAllocation is returned when a Host-owned string could not be allocated.
	ErrAllocation = errors.New("abi: allocation failed")

	// ErrNoCallback is returned when no Host callback has been registered.
	ErrNoCallback = errors.New("abi: no callback registered")
)

// EncodingError reports text that is not a valid Domain String.
type EncodingError struct {
	Offset int
	Byte   byte
}

func (e *EncodingError) Error() string {
	if e.Byte == 0 {
		return fmt.Sprintf("abi: NUL byte at offset %d", e.Offset)
	}
	return fmt.Sprintf("abi: non-ASCII byte 0x%02x at offset %d", e.Byte, e.Offset)
}

// DecodeError reports the first argument of a Host argument list that could
// not be decoded. The whole list is rejected.
type DecodeError struct {
	Err   error
	Index int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("abi: argument %d: %v", e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// CallbackError reports a callback field that failed validation.
type CallbackError struct {
	Err   error
	Field string
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("abi: callback %s: %v", e.Field, e.Err)
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}
