package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// StubResponse is the answer of the placeholder business logic.
const StubResponse = "Test Response"

// Bundle is a pre-configured set of related handlers.
type Bundle interface {
	// Handlers returns a map of function names to handlers.
	Handlers() map[string]Handler
}

// staticBundle implements Bundle with a fixed set of handlers.
type staticBundle struct {
	handlers map[string]Handler
}

func (b *staticBundle) Handlers() map[string]Handler {
	return b.handlers
}

// Notifier pushes a function/data pair through the Host callback.
type Notifier func(function, data string) error

// BuiltinDeps are the collaborators the built-in commands need.
type BuiltinDeps struct {
	// Notify reaches the registered Host callback.
	Notify Notifier

	// Names lists the registered command names; it is resolved lazily because
	// the registry is built after the bundle.
	Names func() []string

	// Identification is the string RVExtensionVersion reports.
	Identification string
}

// Builtins returns the commands every extension build ships with:
// test, echo, version, commands, callback.
func Builtins(deps BuiltinDeps) Bundle {
	return &staticBundle{
		handlers: map[string]Handler{
			"test":     Static(StubResponse),
			"echo":     echo,
			"version":  Static(deps.Identification),
			"commands": listCommands(deps.Names),
			"callback": callback(deps.Notify),
		},
	}
}

func echo(_ context.Context, args []string) (string, error) {
	return strings.Join(args, ","), nil
}

// listCommands answers with the command names as a JSON array, which the
// Host's scripting language also parses as an array literal.
func listCommands(names func() []string) Handler {
	return func(context.Context, []string) (string, error) {
		var list []string
		if names != nil {
			list = names()
		}
		if list == nil {
			list = []string{}
		}
		data, err := json.Marshal(list)
		if err != nil {
			return "", fmt.Errorf("failed to marshal command list: %w", err)
		}
		return string(data), nil
	}
}

// callback pushes args[0] as the function and args[1] as the data through the
// registered Host callback.
func callback(notify Notifier) Handler {
	return func(_ context.Context, args []string) (string, error) {
		if len(args) != 2 {
			return "", NewValidationError(fmt.Sprintf("callback expects 2 arguments (function, data), got %d", len(args)))
		}
		if notify == nil {
			return "", NewInternalError("callback unavailable")
		}
		if err := notify(args[0], args[1]); err != nil {
			return "", NewInternalError(err.Error())
		}
		return "OK", nil
	}
}
