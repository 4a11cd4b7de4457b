// Package log builds the extension's structured logger (log/slog) and
// provides a handler that forwards records to the Host callback.
package log

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/reglet-dev/rvext/internal/abi"
)

// HostFunction is the callback function name used for forwarded records.
const HostFunction = "log"

// SendFunc pushes a function/data pair through the Host callback.
type SendFunc func(function, data string) error

// HostHandler implements slog.Handler by serializing each record as JSON and
// sending it through the Host callback.
type HostHandler struct {
	send   SendFunc
	attrs  []LogAttrWire
	prefix string
	opts   handlerConfig
}

// HandlerOption configures the HostHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level slog.Leveler
}

// defaultHandlerConfig returns the default configuration.
func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level: slog.LevelInfo,
	}
}

// WithLevel sets the minimum log level forwarded to the Host.
func WithLevel(level slog.Leveler) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// NewHostHandler creates a HostHandler sending through send.
func NewHostHandler(send SendFunc, opts ...HandlerOption) *HostHandler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &HostHandler{send: send, opts: cfg}
}

// Enabled reports whether the handler handles records at the given level.
func (h *HostHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level.Level()
}

// Handle serializes record and sends it to the Host. Delivery failures,
// including the Host not having registered a callback yet, drop the record.
func (h *HostHandler) Handle(_ context.Context, record slog.Record) error {
	msg := LogMessageWire{
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}
	msg.Attrs = append(msg.Attrs, h.attrs...)
	record.Attrs(func(attr slog.Attr) bool {
		msg.Attrs = flattenAttrs(msg.Attrs, h.prefix, attr)
		return true
	})

	data, err := json.Marshal(msg)
	if err != nil {
		return nil
	}
	_ = h.send(HostFunction, abi.ASCIIJSON(data))
	return nil
}

// WithAttrs returns a new HostHandler that includes the given attributes.
func (h *HostHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]LogAttrWire, len(h.attrs), len(h.attrs)+len(attrs))
	copy(next.attrs, h.attrs)
	for _, attr := range attrs {
		next.attrs = flattenAttrs(next.attrs, h.prefix, attr)
	}
	return &next
}

// WithGroup returns a new HostHandler whose subsequent attributes are keyed
// under name.
func (h *HostHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = joinKey(h.prefix, name)
	return &next
}
