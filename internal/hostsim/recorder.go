package hostsim

import (
	"sync"
	"unsafe"

	"github.com/reglet-dev/rvext/internal/abi"
)

// Invocation is one call the extension made into the Host callback.
type Invocation struct {
	Name     string
	Function string
	Data     string
}

// Recorder plays the Host callback. It copies the three strings it receives,
// releases them as the Host would, and remembers the invocation.
type Recorder struct {
	mem    *Memory
	onCall func(Invocation)
	calls  []Invocation
	result int
	mu     sync.Mutex
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithResult sets the value the Recorder returns from every call.
func WithResult(result int) RecorderOption {
	return func(r *Recorder) {
		r.result = result
	}
}

// WithOnCall registers a function run after each recorded call.
func WithOnCall(fn func(Invocation)) RecorderOption {
	return func(r *Recorder) {
		r.onCall = fn
	}
}

// NewRecorder creates a Recorder that frees received strings from mem.
// mem may be nil when the strings were not allocated by a Memory.
func NewRecorder(mem *Memory, opts ...RecorderOption) *Recorder {
	r := &Recorder{mem: mem}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Call implements abi.Callback.
func (r *Recorder) Call(name, function, data unsafe.Pointer) int {
	inv := Invocation{
		Name:     string(abi.CStringBytes((*byte)(name))),
		Function: string(abi.CStringBytes((*byte)(function))),
		Data:     string(abi.CStringBytes((*byte)(data))),
	}
	if r.mem != nil {
		r.mem.Free(name)
		r.mem.Free(function)
		r.mem.Free(data)
	}

	r.mu.Lock()
	r.calls = append(r.calls, inv)
	onCall := r.onCall
	result := r.result
	r.mu.Unlock()

	if onCall != nil {
		onCall(inv)
	}
	return result
}

// Calls returns a copy of the recorded invocations.
func (r *Recorder) Calls() []Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Invocation, len(r.calls))
	copy(out, r.calls)
	return out
}

// Reset forgets all recorded invocations.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
