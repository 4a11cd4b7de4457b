package abi

import (
	"sync"
	"unsafe"
)

// Invoke hands name, function and data to the Host callback cb.
//
// All three strings are validated before anything is allocated, and all three
// Host-owned copies are built before cb is called, so the Host never observes
// a partial invocation. cb is called exactly once on success and the Host's
// return value is passed back. After cb is entered the three buffers belong
// to the Host; they are never read, freed or reused here.
func Invoke(cb Callback, mem Memory, name, function, data string) (int, error) {
	if cb == nil {
		return 0, ErrNoCallback
	}
	if mem == nil {
		return 0, &CallbackError{Field: "name", Err: ErrAllocation}
	}

	fields := [3]struct {
		field string
		value string
	}{
		{"name", name},
		{"function", function},
		{"data", data},
	}
	for _, f := range fields {
		if err := ValidateText(f.value); err != nil {
			return 0, &CallbackError{Field: f.field, Err: err}
		}
	}

	var ptrs [3]unsafe.Pointer
	for i, f := range fields {
		p, err := mem.CString(f.value)
		if err != nil || p == nil {
			for _, built := range ptrs[:i] {
				mem.Free(built)
			}
			return 0, &CallbackError{Field: f.field, Err: ErrAllocation}
		}
		ptrs[i] = p
	}

	return cb.Call(ptrs[0], ptrs[1], ptrs[2]), nil
}

// CallbackSlot holds the process-wide Host callback.
// The zero value is empty and ready to use.
type CallbackSlot struct {
	cb Callback
	mu sync.RWMutex
}

// Store replaces the registered callback. Storing nil clears the slot.
func (s *CallbackSlot) Store(cb Callback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cb = cb
}

// Load returns the registered callback, if any.
func (s *CallbackSlot) Load() (Callback, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cb, s.cb != nil
}

// Invoke calls the registered callback through Invoke.
// Returns ErrNoCallback if the Host has not registered one yet.
func (s *CallbackSlot) Invoke(mem Memory, name, function, data string) (int, error) {
	cb, ok := s.Load()
	if !ok {
		return 0, ErrNoCallback
	}
	return Invoke(cb, mem, name, function, data)
}
