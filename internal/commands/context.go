package commands

import (
	"context"
)

// CallContext is the context passed to handlers and middleware. It carries the
// function name the Host asked for.
type CallContext interface {
	context.Context

	// FunctionName returns the name the Host invoked.
	FunctionName() string
}

type callContext struct {
	context.Context
	funcName string
}

func (c *callContext) FunctionName() string {
	return c.funcName
}

// CallContextFrom wraps ctx with the invoked function name.
// If ctx is already a CallContext for the same name it is returned unchanged.
func CallContextFrom(ctx context.Context, funcName string) CallContext {
	if cc, ok := ctx.(CallContext); ok && cc.FunctionName() == funcName {
		return cc
	}
	return &callContext{Context: ctx, funcName: funcName}
}

// FunctionName returns the invoked function name stored in ctx, or "unknown".
func FunctionName(ctx context.Context) string {
	if cc, ok := ctx.(CallContext); ok {
		return cc.FunctionName()
	}
	return "unknown"
}
