package hostsim

import (
	"sync"
	"unsafe"

	"github.com/reglet-dev/rvext/internal/abi"
)

// Memory is a Go-backed abi.Memory. It keeps every allocation reachable until
// it is freed, so tests can check that each string handed to the Host is
// released exactly once.
type Memory struct {
	live   map[unsafe.Pointer][]byte
	failAt int
	allocs int
	mu     sync.Mutex
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{live: make(map[unsafe.Pointer][]byte), failAt: -1}
}

// FailAfter makes every allocation after the first n fail.
// A negative n disables failures.
func (m *Memory) FailAfter(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAt = n
}

// CString implements abi.Memory.
func (m *Memory) CString(s string) (unsafe.Pointer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failAt >= 0 && m.allocs >= m.failAt {
		return nil, abi.ErrAllocation
	}
	m.allocs++

	buf := make([]byte, len(s)+1)
	copy(buf, s)
	p := unsafe.Pointer(&buf[0])
	m.live[p] = buf
	return p, nil
}

// Free implements abi.Memory. Unknown pointers are ignored.
func (m *Memory) Free(p unsafe.Pointer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.live, p)
}

// Live returns the number of allocations not yet freed.
func (m *Memory) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.live)
}

// Allocs returns the number of successful allocations.
func (m *Memory) Allocs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allocs
}
