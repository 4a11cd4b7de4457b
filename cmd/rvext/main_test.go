//go:build cgo

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/rvext/internal/abi"
	"github.com/reglet-dev/rvext/internal/config"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "rvext")
	if err != nil {
		panic(err)
	}
	os.Setenv(config.EnvPath, filepath.Join(dir, "missing.yaml"))
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestRVExtensionVersion(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		want     string
	}{
		{name: "fits", capacity: 64, want: "Test Extension v.1.00"},
		{name: "exact", capacity: len("Test Extension v.1.00") + 1, want: "Test Extension v.1.00"},
		{name: "truncated", capacity: 5, want: "Test"},
		{name: "terminator only", capacity: 1, want: ""},
		{name: "zero capacity", capacity: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hostVersion(tt.capacity))
		})
	}
}

func TestRVExtension(t *testing.T) {
	assert.Equal(t, "ping", hostCall(64, "ping"))
	assert.Equal(t, "Test Response", hostCall(64, "test"))
	assert.Equal(t, strings.Repeat("x", 8), hostCall(8, "café"), "undecodable request leaves the buffer untouched")
}

func TestRVExtensionArgs(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		function string
		args     []string
		want     string
	}{
		{name: "echo", capacity: 64, function: "echo", args: []string{"a", "b"}, want: "a,b"},
		{name: "no args", capacity: 64, function: "test", want: "Test Response"},
		{name: "unknown function", capacity: 64, function: "whatever", args: []string{"1"}, want: "Test Response"},
		{name: "truncated", capacity: 4, function: "echo", args: []string{"abcdef"}, want: "abc"},
		{name: "undecodable argument", capacity: 16, function: "echo", args: []string{"ok", "é"}, want: strings.Repeat("x", 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hostCallArgs(tt.capacity, tt.function, tt.args...))
		})
	}
}

func TestRVExtensionRegisterCallback(t *testing.T) {
	registerLoopback()
	t.Cleanup(func() { RVExtensionRegisterCallback(nil) })

	calls, seen := loopbackCalls()
	require.Equal(t, 1, calls, "registration announces itself once")
	assert.Equal(t, [3]string{"Test Extension", "RegisterCallback", "Test Extension v.1.00"}, seen)

	t.Run("notify", func(t *testing.T) {
		resetLoopback()
		require.NoError(t, ext().Notify("onTick", "[1,2]"))

		calls, seen := loopbackCalls()
		assert.Equal(t, 1, calls)
		assert.Equal(t, [3]string{"Test Extension", "onTick", "[1,2]"}, seen)
	})

	t.Run("callback command", func(t *testing.T) {
		resetLoopback()
		assert.Equal(t, "OK", hostCallArgs(64, "callback", "onFire", "42"))

		calls, seen := loopbackCalls()
		assert.Equal(t, 1, calls)
		assert.Equal(t, [3]string{"Test Extension", "onFire", "42"}, seen)
	})

	t.Run("rejected data never reaches the Host", func(t *testing.T) {
		resetLoopback()
		err := ext().Notify("onTick", "naïve")

		var cbErr *abi.CallbackError
		require.ErrorAs(t, err, &cbErr)
		assert.Equal(t, "data", cbErr.Field)
		calls, _ := loopbackCalls()
		assert.Zero(t, calls)
	})

	t.Run("cleared", func(t *testing.T) {
		RVExtensionRegisterCallback(nil)
		resetLoopback()

		assert.ErrorIs(t, ext().Notify("onTick", "1"), abi.ErrNoCallback)
		calls, _ := loopbackCalls()
		assert.Zero(t, calls)
	})
}

func TestCMemory(t *testing.T) {
	for _, s := range []string{"", "Test Extension"} {
		p, err := cMemory{}.CString(s)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, s, string(abi.CStringBytes((*byte)(p))))
		cMemory{}.Free(p)
	}
}

func TestHostCallback(t *testing.T) {
	resetLoopback()
	mem := cMemory{}

	result, err := abi.Invoke(loopbackHandle(), mem, "Test Extension", "Test Function", "Test Data")
	require.NoError(t, err)
	assert.Equal(t, loopbackResult, result)

	calls, seen := loopbackCalls()
	assert.Equal(t, 1, calls)
	assert.Equal(t, [3]string{"Test Extension", "Test Function", "Test Data"}, seen)
}
