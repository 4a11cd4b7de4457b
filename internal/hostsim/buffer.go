package hostsim

import (
	"bytes"
	"unsafe"
)

// guardSize is the number of sentinel bytes placed after every Buffer.
const guardSize = 8

// guardByte fills the sentinel region; any change means a write overran the buffer.
const guardByte = 0xA5

// Buffer is a Host-owned output buffer of a fixed capacity.
type Buffer struct {
	data     []byte
	capacity int
}

// NewBuffer allocates a zeroed buffer of the given capacity followed by a
// guard region.
func NewBuffer(capacity int) *Buffer {
	data := make([]byte, capacity+guardSize)
	for i := capacity; i < len(data); i++ {
		data[i] = guardByte
	}
	return &Buffer{data: data, capacity: capacity}
}

// Ptr returns the address the extension writes to. It is valid even for a
// zero-capacity buffer so that capacity guards can be exercised.
func (b *Buffer) Ptr() unsafe.Pointer {
	return unsafe.Pointer(&b.data[0])
}

// Cap returns the declared capacity as the ABI passes it.
func (b *Buffer) Cap() uintptr {
	return uintptr(b.capacity)
}

// Fill sets every byte inside the declared capacity to v.
func (b *Buffer) Fill(v byte) {
	for i := 0; i < b.capacity; i++ {
		b.data[i] = v
	}
}

// Bytes returns the declared region of the buffer.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.capacity]
}

// String returns the contents up to the first NUL, as the Host would read them.
func (b *Buffer) String() string {
	region := b.Bytes()
	if i := bytes.IndexByte(region, 0); i >= 0 {
		return string(region[:i])
	}
	return string(region)
}

// Overrun reports whether anything was written past the declared capacity.
func (b *Buffer) Overrun() bool {
	for _, v := range b.data[b.capacity:] {
		if v != guardByte {
			return true
		}
	}
	return false
}

// CString returns a pointer to a NUL-terminated copy of s.
func CString(s string) *byte {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return &buf[0]
}

// RawCString returns a pointer to a NUL-terminated copy of raw bytes, which
// need not be valid text.
func RawCString(raw []byte) *byte {
	buf := make([]byte, len(raw)+1)
	copy(buf, raw)
	return &buf[0]
}

// Argv builds a Host argument array. It returns nil for an empty list.
func Argv(args ...string) (**byte, int) {
	if len(args) == 0 {
		return nil, 0
	}
	ptrs := make([]*byte, len(args))
	for i, arg := range args {
		ptrs[i] = CString(arg)
	}
	return &ptrs[0], len(ptrs)
}

// ArgvPtrs builds a Host argument array from prepared pointers, which may
// include nil or invalid entries.
func ArgvPtrs(ptrs ...*byte) (**byte, int) {
	if len(ptrs) == 0 {
		return nil, 0
	}
	arr := make([]*byte, len(ptrs))
	copy(arr, ptrs)
	return &arr[0], len(arr)
}
