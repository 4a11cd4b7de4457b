package commands

import (
	"context"
	"fmt"
	"sort"
)

// Registry is an immutable collection of named handlers.
// Once created via NewRegistry, handlers cannot be added or removed, so
// lookups need no locking when the Host calls from several threads.
type Registry struct {
	handlers map[string]Handler
	fallback Handler
	names    []string // sorted for consistent iteration
}

// registryBuilder accumulates configuration during registry construction.
type registryBuilder struct {
	handlers   map[string]Handler
	fallback   Handler
	middleware []Middleware
	errors     []error
}

// RegistryOption is a functional option for configuring a Registry.
type RegistryOption func(*registryBuilder)

// NewRegistry creates an immutable Registry with the given options.
// Returns an error if any handler name is registered twice.
//
//	registry, err := NewRegistry(
//	    WithMiddleware(PanicRecoveryMiddleware()),
//	    WithBundle(Builtins(deps)),
//	    WithHandler("spawn_crate", spawnCrate),
//	)
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	b := &registryBuilder{
		handlers: make(map[string]Handler),
	}

	for _, opt := range opts {
		opt(b)
	}

	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	names := make([]string, 0, len(b.handlers))
	for name := range b.handlers {
		names = append(names, name)
	}
	sort.Strings(names)

	wrappedHandlers := make(map[string]Handler, len(b.handlers))
	for name, handler := range b.handlers {
		wrappedHandlers[name] = b.wrap(handler)
	}

	var fallback Handler
	if b.fallback != nil {
		fallback = b.wrap(b.fallback)
	}

	return &Registry{
		handlers: wrappedHandlers,
		fallback: fallback,
		names:    names,
	}, nil
}

// wrap applies the middleware chain so the first middleware is outermost.
func (b *registryBuilder) wrap(h Handler) Handler {
	for i := len(b.middleware) - 1; i >= 0; i-- {
		h = b.middleware[i](h)
	}
	return h
}

// Invoke dispatches a call by function name. Unknown names go to the
// fallback handler if one is configured, otherwise they fail with a
// NOT_FOUND ErrorResponse.
func (r *Registry) Invoke(ctx context.Context, name string, args []string) (string, error) {
	handler, ok := r.handlers[name]
	if !ok {
		if r.fallback == nil {
			return "", NewNotFoundError(name)
		}
		handler = r.fallback
	}
	return handler(CallContextFrom(ctx, name), args)
}

// Has returns true if a handler with the given name is registered.
// The fallback handler is not counted.
func (r *Registry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Names returns a sorted list of all registered handler names.
func (r *Registry) Names() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}

func (b *registryBuilder) addHandler(name string, handler Handler) error {
	if name == "" {
		return fmt.Errorf("handler name cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler %q is nil", name)
	}
	if _, exists := b.handlers[name]; exists {
		return fmt.Errorf("duplicate handler name: %q", name)
	}
	b.handlers[name] = handler
	return nil
}

// WithHandler registers a handler under name.
func WithHandler(name string, handler Handler) RegistryOption {
	return func(b *registryBuilder) {
		if err := b.addHandler(name, handler); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}

// WithBundle registers every handler of a bundle.
func WithBundle(bundle Bundle) RegistryOption {
	return func(b *registryBuilder) {
		handlers := bundle.Handlers()
		names := make([]string, 0, len(handlers))
		for name := range handlers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := b.addHandler(name, handlers[name]); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}

// WithFallback sets the handler used for function names nobody registered.
func WithFallback(handler Handler) RegistryOption {
	return func(b *registryBuilder) {
		b.fallback = handler
	}
}

// WithMiddleware adds middleware to the registry.
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}
