package log

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// handler renders records as plain lines:
//
//	error: [name] message key=value
//
// The level prefix is omitted for Info, and the name for unnamed loggers.
type handler struct {
	W     io.Writer
	Level Level

	mu    sync.Mutex
	name  string
	attrs string
}

var _ slog.Handler = (*handler)(nil)

func (h *handler) withLevel(lvl Level) *handler {
	out := h.clone()
	out.Level = lvl
	return out
}

func (h *handler) clone() *handler {
	return &handler{
		W:     h.W,
		Level: h.Level,
		name:  h.name,
		attrs: h.attrs,
	}
}

func (h *handler) Enabled(_ context.Context, lvl slog.Level) bool {
	return lvl >= h.Level
}

func (h *handler) Handle(_ context.Context, rec slog.Record) error {
	var buf []byte

	switch {
	case rec.Level >= slog.LevelError:
		buf = append(buf, "error: "...)
	case rec.Level >= slog.LevelInfo:
		// no prefix
	default:
		buf = append(buf, "debug: "...)
	}

	if len(h.name) > 0 {
		buf = append(buf, '[')
		buf = append(buf, h.name...)
		buf = append(buf, "] "...)
	}

	buf = append(buf, rec.Message...)

	if len(h.attrs) > 0 {
		buf = append(buf, ' ')
		buf = append(buf, h.attrs...)
	}
	rec.Attrs(func(a slog.Attr) bool {
		buf = appendAttr(buf, a)
		return true
	})

	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.W.Write(buf)
	return err
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := h.clone()
	var buf []byte
	if len(out.attrs) > 0 {
		buf = append(buf, out.attrs...)
	}
	for _, a := range attrs {
		buf = appendAttr(buf, a)
	}
	out.attrs = strings.TrimPrefix(string(buf), " ")
	return out
}

func (h *handler) WithGroup(name string) slog.Handler {
	out := h.clone()
	if len(out.name) > 0 {
		out.name += "." + name
	} else {
		out.name = name
	}
	return out
}

func appendAttr(buf []byte, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}

	if len(buf) > 0 && buf[len(buf)-1] != ' ' {
		buf = append(buf, ' ')
	}
	buf = append(buf, a.Key...)
	buf = append(buf, '=')

	s := a.Value.String()
	if strings.ContainsAny(s, " \"=") {
		buf = append(buf, strconv.Quote(s)...)
	} else {
		buf = append(buf, s...)
	}
	return buf
}
