// Package abi implements the memory marshalling used at the Host boundary:
// writing Domain Strings into Host-owned buffers, decoding Host-owned C
// string arrays, and handing freshly allocated C strings to the Host callback.
//
// Nothing in this package retains a pointer received from the Host beyond the
// call that supplied it. Every string that leaves through a Callback is owned
// by the Host from that point on.
package abi

import (
	"unsafe"
)

// Memory allocates NUL-terminated strings whose ownership can be handed to the
// Host. The production implementation uses the C heap; tests use Go memory.
type Memory interface {
	// CString returns a pointer to a NUL-terminated copy of s.
	// Returns ErrAllocation if the copy could not be made.
	CString(s string) (unsafe.Pointer, error)

	// Free releases a pointer returned by CString that was never transferred.
	Free(p unsafe.Pointer)
}

// Callback is a Host-supplied function taking three C strings and returning an
// integer. Implementations take ownership semantics from the Host: once Call
// is entered, the three pointers belong to the Host.
type Callback interface {
	Call(name, function, data unsafe.Pointer) int
}

// CStringBytes returns the bytes of the NUL-terminated string at p, without
// the terminator. The result aliases Host memory and must be copied before the
// current call returns.
func CStringBytes(p *byte) []byte {
	if p == nil {
		return nil
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	//nolint:gosec // G103: reading a Host-owned C string
	return unsafe.Slice(p, n)
}
