package logger

import (
	"context"
	"log/slog"

	"github.com/structlog-go/structlog/core"
)

// SlogHandler adapts a Dispatcher to log/slog.Handler, so the standard
// library facade can feed the target registry. The reserved attribute
// key "target" (a string value outside any group) selects the routing
// key and is stripped from the record's fields; records without it
// route like an empty target.
type SlogHandler struct {
	d      *Dispatcher
	attrs  []core.Field
	target string
	group  string
}

// NewSlogHandler creates a slog.Handler adapter over d.
func NewSlogHandler(d *Dispatcher) *SlogHandler {
	return &SlogHandler{d: d}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.d.Enabled(slogLevelToCore(level))
}

// Handle converts a slog.Record and delegates it to the dispatcher.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	target := s.target
	fields := make([]core.Field, 0, record.NumAttrs()+len(s.attrs))
	fields = append(fields, s.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		if s.group == "" && a.Key == "target" && a.Value.Kind() == slog.KindString {
			target = a.Value.String()
			return true
		}
		fields = append(fields, slogAttrToField(s.group, a))
		return true
	})

	timeMS := core.UnixMS()
	if !record.Time.IsZero() {
		timeMS = record.Time.UnixMilli()
	}
	s.d.dispatch(timeMS, slogLevelToCore(record.Level), target, record.Message, nil, fields)
	return nil
}

// WithAttrs returns a new SlogHandler with additional pre-bound attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &SlogHandler{d: s.d, target: s.target, group: s.group}
	next.attrs = make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(next.attrs, s.attrs)
	for _, a := range attrs {
		if s.group == "" && a.Key == "target" && a.Value.Kind() == slog.KindString {
			next.target = a.Value.String()
			continue
		}
		next.attrs = append(next.attrs, slogAttrToField(s.group, a))
	}
	return next
}

// WithGroup returns a new SlogHandler that prefixes attribute keys
// with the group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	group := name
	if s.group != "" {
		group = s.group + "." + name
	}
	return &SlogHandler{d: s.d, attrs: s.attrs, target: s.target, group: group}
}

func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level < slog.LevelDebug:
		return core.TraceLevel
	case level < slog.LevelInfo:
		return core.DebugLevel
	case level < slog.LevelWarn:
		return core.InfoLevel
	case level < slog.LevelError:
		return core.WarnLevel
	default:
		return core.ErrorLevel
	}
}

func slogAttrToField(group string, a slog.Attr) core.Field {
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return core.Field{Key: key, Type: core.StringType, Str: v.String()}
	case slog.KindInt64:
		return core.Field{Key: key, Type: core.Int64Type, Int64: v.Int64()}
	case slog.KindUint64:
		return core.Field{Key: key, Type: core.Uint64Type, Int64: int64(v.Uint64())}
	case slog.KindFloat64:
		return core.Field{Key: key, Type: core.Float64Type, Float64: v.Float64()}
	case slog.KindBool:
		b := int64(0)
		if v.Bool() {
			b = 1
		}
		return core.Field{Key: key, Type: core.BoolType, Int64: b}
	case slog.KindDuration:
		return core.Field{Key: key, Type: core.DurationType, Int64: int64(v.Duration())}
	case slog.KindTime:
		return core.Field{Key: key, Type: core.TimeType, Int64: v.Time().UnixNano()}
	case slog.KindGroup:
		m := make(map[string]interface{}, len(v.Group()))
		for _, ga := range v.Group() {
			m[ga.Key] = ga.Value.Resolve().Any()
		}
		return core.Field{Key: key, Type: core.AnyType, Any: m}
	default:
		return core.Field{Key: key, Type: core.AnyType, Any: v.Any()}
	}
}
