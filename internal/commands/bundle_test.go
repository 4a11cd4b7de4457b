package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notification struct {
	function string
	data     string
}

func newBuiltinRegistry(t *testing.T, notifyErr error) (*Registry, *[]notification) {
	t.Helper()

	var sent []notification
	var reg *Registry
	deps := BuiltinDeps{
		Identification: "Test Extension v.1.00",
		Names:          func() []string { return reg.Names() },
		Notify: func(function, data string) error {
			if notifyErr != nil {
				return notifyErr
			}
			sent = append(sent, notification{function, data})
			return nil
		},
	}

	var err error
	reg, err = NewRegistry(WithBundle(Builtins(deps)))
	require.NoError(t, err)
	return reg, &sent
}

func TestBuiltins_Static(t *testing.T) {
	reg, _ := newBuiltinRegistry(t, nil)

	tests := []struct {
		function string
		args     []string
		want     string
	}{
		{function: "test", want: StubResponse},
		{function: "version", want: "Test Extension v.1.00"},
		{function: "echo", args: []string{`"hello"`, "42"}, want: `"hello",42`},
		{function: "echo", want: ""},
		{function: "commands", want: `["callback","commands","echo","test","version"]`},
	}

	for _, tt := range tests {
		t.Run(tt.function, func(t *testing.T) {
			resp, err := reg.Invoke(context.Background(), tt.function, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp)
		})
	}
}

func TestBuiltins_Callback(t *testing.T) {
	reg, sent := newBuiltinRegistry(t, nil)

	resp, err := reg.Invoke(context.Background(), "callback", []string{"onDrop", "[1,2,3]"})
	require.NoError(t, err)
	assert.Equal(t, "OK", resp)
	assert.Equal(t, []notification{{"onDrop", "[1,2,3]"}}, *sent)
}

func TestBuiltins_CallbackErrors(t *testing.T) {
	t.Run("wrong arity", func(t *testing.T) {
		reg, sent := newBuiltinRegistry(t, nil)

		_, err := reg.Invoke(context.Background(), "callback", []string{"only-one"})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", AsErrorResponse(err).Kind)
		assert.Empty(t, *sent)
	})

	t.Run("notify fails", func(t *testing.T) {
		reg, _ := newBuiltinRegistry(t, errors.New("no callback registered"))

		_, err := reg.Invoke(context.Background(), "callback", []string{"f", "d"})
		require.Error(t, err)
		resp := AsErrorResponse(err)
		assert.Equal(t, "INTERNAL_ERROR", resp.Kind)
		assert.Contains(t, resp.Message, "no callback registered")
	})

	t.Run("no notifier", func(t *testing.T) {
		reg, err := NewRegistry(WithBundle(Builtins(BuiltinDeps{})))
		require.NoError(t, err)

		_, err = reg.Invoke(context.Background(), "callback", []string{"f", "d"})
		assert.Error(t, err)
	})
}

func TestBuiltins_CommandsWithoutNames(t *testing.T) {
	reg, err := NewRegistry(WithBundle(Builtins(BuiltinDeps{})))
	require.NoError(t, err)

	resp, err := reg.Invoke(context.Background(), "commands", nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", resp)
}
