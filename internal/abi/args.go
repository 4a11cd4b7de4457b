package abi

import (
	"fmt"
	"unsafe"
)

// DecodeString copies the NUL-terminated Host string at p into a Go string,
// validating it as a Domain String.
func DecodeString(p *byte) (string, error) {
	if p == nil {
		return "", ErrNilPointer
	}
	s := string(CStringBytes(p))
	if err := ValidateText(s); err != nil {
		return "", err
	}
	return s, nil
}

// DecodeArgs decodes count Host strings from the pointer array argv.
//
// Decoding is all-or-nothing: if any entry is nil or not a Domain String the
// result is nil and the error is a *DecodeError naming the first bad entry.
// The returned strings are copies; argv may be released once this returns.
func DecodeArgs(argv **byte, count int) ([]string, error) {
	if count < 0 {
		return nil, fmt.Errorf("abi: negative argument count %d", count)
	}
	if count == 0 {
		return []string{}, nil
	}
	if argv == nil {
		return nil, &DecodeError{Index: 0, Err: ErrNilPointer}
	}

	//nolint:gosec // G103: the Host guarantees count entries at argv
	ptrs := unsafe.Slice(argv, count)
	args := make([]string, 0, count)
	for i, p := range ptrs {
		s, err := DecodeString(p)
		if err != nil {
			return nil, &DecodeError{Index: i, Err: err}
		}
		args = append(args, s)
	}
	return args, nil
}
