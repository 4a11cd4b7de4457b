// Package hostsim simulates the Host side of the extension ABI in-process.
//
// It provides Go-backed output buffers with overrun detection, NUL-terminated
// argument arrays, a Memory that tracks every string handed across the
// boundary, and a Recorder that plays the role of the Host callback. The
// developer CLI and the package tests drive the entry points through it.
package hostsim
