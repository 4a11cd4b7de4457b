package main

/*
#include <stdlib.h>
#include <string.h>

typedef int (*rvext_callback)(char const *name, char const *function, char const *data);

// Calls the Host function pointer; cgo cannot call through one directly.
static int rvext_invoke(rvext_callback cb, char *name, char *function, char *data) {
	return cb(name, function, data);
}

// Returns a malloc'd NUL-terminated copy of n bytes at src, or NULL.
static char *rvext_host_string(const char *src, size_t n) {
	char *p = malloc(n + 1);
	if (p == NULL) {
		return NULL;
	}
	if (n > 0) {
		memcpy(p, src, n);
	}
	p[n] = '\0';
	return p;
}
*/
import "C"

import (
	"unsafe"

	"github.com/reglet-dev/rvext/internal/abi"
)

// cMemory allocates callback strings on the C heap, where the Host can free them.
type cMemory struct{}

func (cMemory) CString(s string) (unsafe.Pointer, error) {
	var src *C.char
	if len(s) > 0 {
		src = (*C.char)(unsafe.Pointer(unsafe.StringData(s)))
	}
	p := C.rvext_host_string(src, C.size_t(len(s)))
	if p == nil {
		return nil, abi.ErrAllocation
	}
	return unsafe.Pointer(p), nil
}

func (cMemory) Free(p unsafe.Pointer) {
	C.free(p)
}

// hostCallback is the function pointer the Host passed to RVExtensionRegisterCallback.
type hostCallback struct {
	fn C.rvext_callback
}

func (h hostCallback) Call(name, function, data unsafe.Pointer) int {
	return int(C.rvext_invoke(h.fn, (*C.char)(name), (*C.char)(function), (*C.char)(data)))
}
