package commands

import (
	"context"
)

// Handler computes the response for one call. args are the decoded Host
// arguments, already validated as Domain Strings.
type Handler func(ctx context.Context, args []string) (string, error)

// Middleware wraps a Handler to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps outermost).
type Middleware func(next Handler) Handler

// Static returns a Handler that always answers with response.
func Static(response string) Handler {
	return func(context.Context, []string) (string, error) {
		return response, nil
	}
}
