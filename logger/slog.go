package logger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/philipp01105/attrlog/core"
)

// SlogHandler adapts a Logger to the log/slog.Handler interface, so
// attrlog can serve as a drop-in backend for the standard library.
// slog levels map directly onto severities (their integer values are
// preserved); groups flatten into dot-prefixed attribute names.
type SlogHandler struct {
	logger *Logger
	min    slog.Level
	attrs  []core.Attribute
	group  string
}

// NewSlogHandler wraps the logger. Records below min are discarded
// before they reach the logger.
func NewSlogHandler(l *Logger, min slog.Level) *SlogHandler {
	return &SlogHandler{logger: l, min: min}
}

// Enabled reports whether records at the given level are handled.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= s.min
}

// Handle converts the slog record and forwards it.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	attrs := make([]core.Attribute, 0, len(s.attrs)+record.NumAttrs())
	attrs = append(attrs, s.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		attrs = appendSlogAttr(attrs, s.group, a)
		return true
	})
	s.logger.Log(int(record.Level), record.Message, attrs...)
	return nil
}

// WithAttrs returns a handler carrying additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]core.Attribute, len(s.attrs), len(s.attrs)+len(attrs))
	copy(next, s.attrs)
	for _, a := range attrs {
		next = appendSlogAttr(next, s.group, a)
	}
	return &SlogHandler{logger: s.logger, min: s.min, attrs: next, group: s.group}
}

// WithGroup returns a handler prefixing subsequent attribute names.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	group := name
	if s.group != "" {
		group = s.group + "." + name
	}
	return &SlogHandler{logger: s.logger, min: s.min, attrs: s.attrs, group: group}
}

func appendSlogAttr(dst []core.Attribute, group string, a slog.Attr) []core.Attribute {
	name := a.Key
	if group != "" {
		name = group + "." + a.Key
	}

	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return append(dst, core.Attribute{Name: name, Value: core.String(v.String())})
	case slog.KindInt64:
		return append(dst, core.Attribute{Name: name, Value: core.Int64(v.Int64())})
	case slog.KindUint64:
		return append(dst, core.Attribute{Name: name, Value: core.Uint64(v.Uint64())})
	case slog.KindFloat64:
		return append(dst, core.Attribute{Name: name, Value: core.Float64(v.Float64())})
	case slog.KindBool:
		return append(dst, core.Attribute{Name: name, Value: core.Bool(v.Bool())})
	case slog.KindTime:
		return append(dst, core.Attribute{Name: name, Value: core.String(v.Time().Format(time.RFC3339Nano))})
	case slog.KindDuration:
		return append(dst, core.Attribute{Name: name, Value: core.Int64(int64(v.Duration()))})
	case slog.KindGroup:
		for _, ga := range v.Group() {
			dst = appendSlogAttr(dst, name, ga)
		}
		return dst
	default:
		return append(dst, core.Attribute{Name: name, Value: core.String(fmt.Sprint(v.Any()))})
	}
}
