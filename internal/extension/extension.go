// Package extension implements the four Host entry points on top of the
// marshalling primitives in internal/abi and the command registry.
//
// Every entry point is synchronous, recovers its own failures and never lets a
// panic unwind into the Host.
package extension

import (
	"context"
	"io"
	"log/slog"
	"runtime/debug"
	"unsafe"

	"github.com/reglet-dev/rvext/internal/abi"
	"github.com/reglet-dev/rvext/internal/commands"
	"github.com/reglet-dev/rvext/internal/config"
	"github.com/reglet-dev/rvext/internal/log"
)

// RegisterFunction is the callback function name used to announce a newly
// registered callback.
const RegisterFunction = "RegisterCallback"

// Extension holds the process-wide state behind the exported entry points.
type Extension struct {
	memory   abi.Memory
	logger   *slog.Logger
	closer   io.Closer
	registry *commands.Registry
	settings config.Settings
	callback abi.CallbackSlot
}

// Option configures an Extension.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	closer   io.Closer
	commands []commands.RegistryOption
}

// WithLogger sets the logger. closer, if non-nil, is released by Close.
func WithLogger(logger *slog.Logger, closer io.Closer) Option {
	return func(o *options) {
		o.logger = logger
		o.closer = closer
	}
}

// WithCommands adds handlers, bundles or middleware to the command registry.
func WithCommands(opts ...commands.RegistryOption) Option {
	return func(o *options) {
		o.commands = append(o.commands, opts...)
	}
}

// New creates an Extension. memory allocates the strings handed to the Host
// callback.
func New(settings config.Settings, memory abi.Memory, opts ...Option) (*Extension, error) {
	o := options{logger: log.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Extension{
		settings: settings,
		memory:   memory,
		logger:   o.logger,
		closer:   o.closer,
	}

	regOpts := []commands.RegistryOption{
		commands.WithMiddleware(
			commands.LoggingMiddleware(e.logger),
			commands.PanicRecoveryMiddleware(),
		),
		commands.WithBundle(commands.Builtins(commands.BuiltinDeps{
			Notify:         e.Notify,
			Names:          func() []string { return e.registry.Names() },
			Identification: settings.Identification(),
		})),
		commands.WithFallback(commands.Static(commands.StubResponse)),
	}
	registry, err := commands.NewRegistry(append(regOpts, o.commands...)...)
	if err != nil {
		return nil, err
	}
	e.registry = registry

	return e, nil
}

// Settings returns the settings the extension was built with.
func (e *Extension) Settings() config.Settings {
	return e.settings
}

// Close releases the log file, if any.
func (e *Extension) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// Version implements RVExtensionVersion: it writes the identification string
// into the Host buffer.
func (e *Extension) Version(out unsafe.Pointer, capacity uintptr) {
	defer e.recoverBoundary("RVExtensionVersion")
	e.respond(out, capacity, e.settings.Identification())
}

// Call implements RVExtension. A request naming a registered command runs it
// without arguments; anything else is echoed back. An undecodable request
// leaves the buffer untouched.
func (e *Extension) Call(out unsafe.Pointer, capacity uintptr, request *byte) {
	defer e.recoverBoundary("RVExtension")

	req, err := abi.DecodeString(request)
	if err != nil {
		e.logger.Warn("request rejected, no response written", slog.Any("error", err))
		return
	}

	resp := req
	if e.registry.Has(req) {
		resp = e.dispatch(context.Background(), req, nil)
	}
	e.respond(out, capacity, resp)
}

// CallArgs implements RVExtensionArgs. The function name and every argument
// must decode; otherwise no response is written.
func (e *Extension) CallArgs(out unsafe.Pointer, capacity uintptr, function *byte, argv **byte, argc int) {
	defer e.recoverBoundary("RVExtensionArgs")

	name, err := abi.DecodeString(function)
	if err != nil {
		e.logger.Warn("function name rejected, no response written", slog.Any("error", err))
		return
	}
	args, err := abi.DecodeArgs(argv, argc)
	if err != nil {
		e.logger.Warn("arguments rejected, no response written",
			slog.String("function", name),
			slog.Int("argc", argc),
			slog.Any("error", err))
		return
	}

	e.respond(out, capacity, e.dispatch(context.Background(), name, args))
}

// RegisterCallback implements RVExtensionRegisterCallback. The handle replaces
// any previous one and, unless disabled in the settings, is exercised once
// straight away.
func (e *Extension) RegisterCallback(cb abi.Callback) {
	defer e.recoverBoundary("RVExtensionRegisterCallback")

	e.callback.Store(cb)
	if cb == nil {
		e.logger.Warn("Host registered a nil callback")
		return
	}
	e.logger.Info("callback registered")

	if e.settings.AnnounceOnRegister {
		_ = e.Notify(RegisterFunction, e.settings.Identification())
	}
}

// Notify sends function and data through the registered callback, with the
// extension name as the first argument.
func (e *Extension) Notify(function, data string) error {
	err := e.send(function, data)
	if err != nil {
		e.logger.Warn("callback not delivered", slog.String("function", function), slog.Any("error", err))
		return err
	}
	e.logger.Debug("callback delivered", slog.String("function", function), slog.Int("data_bytes", len(data)))
	return nil
}

// send is Notify without logging; the log forwarder uses it.
func (e *Extension) send(function, data string) error {
	result, err := e.callback.Invoke(e.memory, e.settings.Name, function, data)
	if err != nil {
		return err
	}
	if result < 0 {
		return &HostRejectedError{Function: function, Result: result}
	}
	return nil
}

func (e *Extension) dispatch(ctx context.Context, name string, args []string) string {
	resp, err := e.registry.Invoke(ctx, name, args)
	if err != nil {
		return commands.AsErrorResponse(err).JSON()
	}
	return resp
}

func (e *Extension) respond(out unsafe.Pointer, capacity uintptr, text string) {
	n, err := abi.WriteToPtr(out, capacity, text)
	if err != nil {
		e.logger.Warn("response not written", slog.Uint64("capacity", uint64(capacity)), slog.Any("error", err))
		return
	}
	if n < len(text) {
		e.logger.Debug("response truncated", slog.Int("length", len(text)), slog.Int("written", n))
	}
}

func (e *Extension) recoverBoundary(entry string) {
	if r := recover(); r != nil {
		e.logger.Error("recovered panic at Host boundary",
			slog.String("entry", entry),
			slog.Any("panic", r),
			slog.String("stack", string(debug.Stack())))
	}
}
