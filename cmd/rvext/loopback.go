package main

/*
#include <stdlib.h>
#include <string.h>

typedef int (*rvext_callback)(char const *name, char const *function, char const *data);

#define RVEXT_LOOPBACK_FIELD 512

static char rvext_loopback_seen[3][RVEXT_LOOPBACK_FIELD];
static int rvext_loopback_calls;

// Behaves like a Host: copies each string out, then frees it.
static int rvext_loopback_callback(char const *name, char const *function, char const *data) {
	char const *in[3] = {name, function, data};
	for (int i = 0; i < 3; i++) {
		strncpy(rvext_loopback_seen[i], in[i], RVEXT_LOOPBACK_FIELD - 1);
		rvext_loopback_seen[i][RVEXT_LOOPBACK_FIELD - 1] = '\0';
		free((void *)in[i]);
	}
	rvext_loopback_calls++;
	return 7;
}

static rvext_callback rvext_loopback(void) {
	return rvext_loopback_callback;
}

static void rvext_loopback_reset(void) {
	memset(rvext_loopback_seen, 0, sizeof rvext_loopback_seen);
	rvext_loopback_calls = 0;
}

static int rvext_loopback_count(void) {
	return rvext_loopback_calls;
}

static char const *rvext_loopback_field(int i) {
	return rvext_loopback_seen[i];
}
*/
import "C"

import (
	"bytes"
	"unsafe"

	"github.com/reglet-dev/rvext/internal/abi"
)

// loopbackResult is what the loopback Host callback returns.
const loopbackResult = 7

// The loopback helpers drive the exported entry points with C-heap memory,
// the way a Host process does.

func registerLoopback() {
	C.rvext_loopback_reset()
	RVExtensionRegisterCallback(C.rvext_loopback())
}

func resetLoopback() {
	C.rvext_loopback_reset()
}

// loopbackCalls returns how many times the callback ran and the strings it
// last received.
func loopbackCalls() (int, [3]string) {
	var seen [3]string
	for i := range seen {
		seen[i] = C.GoString(C.rvext_loopback_field(C.int(i)))
	}
	return int(C.rvext_loopback_count()), seen
}

// hostOutput allocates a capacity-byte output buffer on the C heap filled with
// 'x', runs fn against it and returns its contents up to the first NUL, or the
// whole buffer if none was written.
func hostOutput(capacity int, fn func(out *C.char, size C.size_t)) string {
	size := C.size_t(capacity)
	raw := C.malloc(size + 1)
	defer C.free(raw)
	C.memset(raw, 'x', size)

	fn((*C.char)(raw), size)

	b := C.GoBytes(raw, C.int(capacity))
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

func hostVersion(capacity int) string {
	return hostOutput(capacity, RVExtensionVersion)
}

func hostCall(capacity int, request string) string {
	req := C.CString(request)
	defer C.free(unsafe.Pointer(req))
	return hostOutput(capacity, func(out *C.char, size C.size_t) {
		RVExtension(out, size, req)
	})
}

func hostCallArgs(capacity int, function string, args ...string) string {
	fn := C.CString(function)
	defer C.free(unsafe.Pointer(fn))

	var argv **C.char
	if len(args) > 0 {
		raw := C.malloc(C.size_t(len(args)) * C.size_t(unsafe.Sizeof(uintptr(0))))
		defer C.free(raw)
		argv = (**C.char)(raw)
		entries := unsafe.Slice(argv, len(args))
		for i, a := range args {
			entries[i] = C.CString(a)
			defer C.free(unsafe.Pointer(entries[i]))
		}
	}
	return hostOutput(capacity, func(out *C.char, size C.size_t) {
		RVExtensionArgs(out, size, fn, argv, C.int(len(args)))
	})
}

func loopbackHandle() abi.Callback {
	return hostCallback{fn: C.rvext_loopback()}
}
