package log

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// LogMessageWire is the JSON document pushed to the Host for one record.
type LogMessageWire struct {
	Timestamp time.Time     `json:"timestamp"`
	Attrs     []LogAttrWire `json:"attrs,omitempty"`
	Level     string        `json:"level"`
	Message   string        `json:"message"`
}

// LogAttrWire represents a single slog attribute for wire transfer.
type LogAttrWire struct {
	Key   string `json:"key"`
	Type  string `json:"type"`  // "string", "int64", "bool", "float64", "time", "error", "json", "any"
	Value string `json:"value"` // String representation of the value
}

// toLogAttrWire converts a slog.Attr to LogAttrWire. prefix is the dotted
// group path the attribute was recorded under.
func toLogAttrWire(prefix string, attr slog.Attr) LogAttrWire {
	wire := LogAttrWire{Key: attr.Key}
	if prefix != "" {
		wire.Key = prefix + "." + attr.Key
	}
	attr.Value = attr.Value.Resolve()

	switch attr.Value.Kind() {
	case slog.KindString:
		wire.Type = "string"
		wire.Value = attr.Value.String()
	case slog.KindInt64:
		wire.Type = "int64"
		wire.Value = fmt.Sprintf("%d", attr.Value.Int64())
	case slog.KindUint64:
		wire.Type = "uint64"
		wire.Value = fmt.Sprintf("%d", attr.Value.Uint64())
	case slog.KindBool:
		wire.Type = "bool"
		wire.Value = fmt.Sprintf("%t", attr.Value.Bool())
	case slog.KindFloat64:
		wire.Type = "float64"
		wire.Value = fmt.Sprintf("%f", attr.Value.Float64())
	case slog.KindTime:
		wire.Type = "time"
		wire.Value = attr.Value.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		wire.Type = "duration"
		wire.Value = attr.Value.Duration().String()
	case slog.KindAny:
		v := attr.Value.Any()
		if v == nil {
			wire.Type = "any"
			wire.Value = "<nil>"
		} else if err, isErr := v.(error); isErr {
			wire.Type = "error"
			wire.Value = err.Error()
		} else if data, marshalErr := json.Marshal(v); marshalErr == nil {
			wire.Type = "json"
			wire.Value = string(data)
		} else {
			wire.Type = "any"
			wire.Value = fmt.Sprintf("%v", v)
		}
	default:
		wire.Type = "any"
		wire.Value = fmt.Sprintf("%v", attr.Value.Any())
	}
	return wire
}

// flattenAttrs appends attr to dst, expanding groups into dotted keys.
func flattenAttrs(dst []LogAttrWire, prefix string, attr slog.Attr) []LogAttrWire {
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() != slog.KindGroup {
		if attr.Equal(slog.Attr{}) {
			return dst
		}
		return append(dst, toLogAttrWire(prefix, attr))
	}

	groupPrefix := prefix
	if attr.Key != "" {
		groupPrefix = joinKey(prefix, attr.Key)
	}
	for _, member := range attr.Value.Group() {
		dst = flattenAttrs(dst, groupPrefix, member)
	}
	return dst
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
