// Command rvext is the extension library loaded by the Host.
//
// Build it as a C shared library:
//
//	go build -buildmode=c-shared -o rvext_x64.dll ./cmd/rvext
//	go build -buildmode=c-shared -o rvext_x64.so ./cmd/rvext
//
// The library exports exactly the four symbols the Host looks up. Only 64-bit
// Hosts are supported: they use a single calling convention for all four.
package main

/*
#include <stddef.h>

typedef int (*rvext_callback)(char const *name, char const *function, char const *data);
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/reglet-dev/rvext/internal/extension"
)

var (
	instanceOnce sync.Once
	instance     *extension.Extension
)

// ext returns the process-wide extension, loading it on first use.
func ext() *extension.Extension {
	instanceOnce.Do(func() {
		instance = extension.Load(cMemory{})
	})
	return instance
}

//export RVExtensionVersion
func RVExtensionVersion(output *C.char, outputSize C.size_t) {
	ext().Version(unsafe.Pointer(output), uintptr(outputSize))
}

//export RVExtension
func RVExtension(output *C.char, outputSize C.size_t, function *C.char) {
	ext().Call(unsafe.Pointer(output), uintptr(outputSize), (*byte)(unsafe.Pointer(function)))
}

//export RVExtensionArgs
func RVExtensionArgs(output *C.char, outputSize C.size_t, function *C.char, argv **C.char, argc C.int) {
	ext().CallArgs(
		unsafe.Pointer(output),
		uintptr(outputSize),
		(*byte)(unsafe.Pointer(function)),
		(**byte)(unsafe.Pointer(argv)),
		int(argc),
	)
}

//export RVExtensionRegisterCallback
func RVExtensionRegisterCallback(callback C.rvext_callback) {
	if callback == nil {
		ext().RegisterCallback(nil)
		return
	}
	ext().RegisterCallback(hostCallback{fn: callback})
}

func main() {}
