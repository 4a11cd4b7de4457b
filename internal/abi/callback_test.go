package abi_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/rvext/internal/abi"
	"github.com/reglet-dev/rvext/internal/hostsim"
)

func TestInvoke_CallsOnceWithContents(t *testing.T) {
	mem := hostsim.NewMemory()
	rec := hostsim.NewRecorder(mem, hostsim.WithResult(7))

	result, err := abi.Invoke(rec, mem, "Test Extension", "Test Function", "Test Data")
	require.NoError(t, err)
	assert.Equal(t, 7, result)

	calls := rec.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, hostsim.Invocation{
		Name:     "Test Extension",
		Function: "Test Function",
		Data:     "Test Data",
	}, calls[0])

	assert.Equal(t, 3, mem.Allocs(), "expected three independent buffers")
	assert.Zero(t, mem.Live(), "Host should have released every transferred buffer")
}

func TestInvoke_EmptyStrings(t *testing.T) {
	mem := hostsim.NewMemory()
	rec := hostsim.NewRecorder(mem)

	_, err := abi.Invoke(rec, mem, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, []hostsim.Invocation{{}}, rec.Calls())
}

func TestInvoke_RejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name      string
		fields    [3]string
		wantField string
	}{
		{name: "non-ascii name", fields: [3]string{"näme", "f", "d"}, wantField: "name"},
		{name: "NUL in function", fields: [3]string{"n", "f\x00x", "d"}, wantField: "function"},
		{name: "non-ascii data", fields: [3]string{"n", "f", "\xfe"}, wantField: "data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := hostsim.NewMemory()
			rec := hostsim.NewRecorder(mem)

			_, err := abi.Invoke(rec, mem, tt.fields[0], tt.fields[1], tt.fields[2])
			require.Error(t, err)

			var cbErr *abi.CallbackError
			require.ErrorAs(t, err, &cbErr)
			assert.Equal(t, tt.wantField, cbErr.Field)

			assert.Empty(t, rec.Calls(), "callback must not be invoked")
			assert.Zero(t, mem.Allocs(), "nothing should be allocated before validation passes")
		})
	}
}

func TestInvoke_AllocationFailure(t *testing.T) {
	for failAfter := 0; failAfter < 3; failAfter++ {
		mem := hostsim.NewMemory()
		mem.FailAfter(failAfter)
		rec := hostsim.NewRecorder(mem)

		_, err := abi.Invoke(rec, mem, "n", "f", "d")
		assert.ErrorIs(t, err, abi.ErrAllocation)
		assert.Empty(t, rec.Calls())
		assert.Zero(t, mem.Live(), "partially built buffers must be released")
	}
}

func TestInvoke_NilCallback(t *testing.T) {
	_, err := abi.Invoke(nil, hostsim.NewMemory(), "n", "f", "d")
	assert.ErrorIs(t, err, abi.ErrNoCallback)
}

func TestInvoke_NilMemory(t *testing.T) {
	rec := hostsim.NewRecorder(hostsim.NewMemory())

	_, err := abi.Invoke(rec, nil, "n", "f", "d")

	var cbErr *abi.CallbackError
	require.ErrorAs(t, err, &cbErr)
	assert.ErrorIs(t, err, abi.ErrAllocation)
	assert.Empty(t, rec.Calls())
}

func TestCallbackSlot(t *testing.T) {
	var slot abi.CallbackSlot
	mem := hostsim.NewMemory()

	_, ok := slot.Load()
	assert.False(t, ok, "slot should start empty")

	_, err := slot.Invoke(mem, "n", "f", "d")
	assert.ErrorIs(t, err, abi.ErrNoCallback)

	first := hostsim.NewRecorder(mem)
	second := hostsim.NewRecorder(mem)

	slot.Store(first)
	_, err = slot.Invoke(mem, "n", "f", "1")
	require.NoError(t, err)

	slot.Store(second)
	_, err = slot.Invoke(mem, "n", "f", "2")
	require.NoError(t, err)

	assert.Len(t, first.Calls(), 1)
	require.Len(t, second.Calls(), 1)
	assert.Equal(t, "2", second.Calls()[0].Data)

	slot.Store(nil)
	_, ok = slot.Load()
	assert.False(t, ok)
}

func TestCallbackSlot_Concurrent(t *testing.T) {
	var slot abi.CallbackSlot
	mem := hostsim.NewMemory()
	rec := hostsim.NewRecorder(mem)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			slot.Store(rec)
		}()
		go func() {
			defer wg.Done()
			_, _ = slot.Invoke(mem, "n", "f", "d")
		}()
	}
	wg.Wait()

	assert.Zero(t, mem.Live())
}
