package abi

import (
	"unsafe"
)

// WriteString copies text into dst as a NUL-terminated C string.
//
// At most len(dst)-1 bytes of text are copied, followed by a single NUL. The
// return value is the number of text bytes written; a value smaller than
// len(text) means the output was truncated. Nothing is written when dst is
// empty or text is not a Domain String.
func WriteString(dst []byte, text string) (int, error) {
	if len(dst) == 0 {
		return 0, ErrZeroCapacity
	}
	if err := ValidateText(text); err != nil {
		return 0, err
	}
	n := copy(dst[:len(dst)-1], text)
	dst[n] = 0
	return n, nil
}

// WriteToPtr writes text into the Host buffer at out, whose declared size is
// capacity bytes. See WriteString for the truncation rules.
//
// Only the prefix of the buffer that will actually be written is addressed, so
// an implausibly large capacity never produces an oversized slice.
func WriteToPtr(out unsafe.Pointer, capacity uintptr, text string) (int, error) {
	if capacity == 0 {
		return 0, ErrZeroCapacity
	}
	if out == nil {
		return 0, ErrNilPointer
	}
	view := uintptr(len(text)) + 1
	if capacity < view {
		view = capacity
	}
	//nolint:gosec // G103: the Host guarantees capacity bytes at out
	return WriteString(unsafe.Slice((*byte)(out), view), text)
}
