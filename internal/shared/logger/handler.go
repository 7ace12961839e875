package logger

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
)

// Redacted replaces the value of sensitive attributes.
const Redacted = "[REDACTED]"

// sensitiveKeys never reach the output. OAuth codes and tokens grant access
// to a Slack workspace on their own.
var sensitiveKeys = map[string]bool{
	"code":          true,
	"access_token":  true,
	"bot_token":     true,
	"client_secret": true,
	"token":         true,
	"authorization": true,
	"secret":        true,
}

type recordHandler struct {
	handler          slog.Handler
	showSourceLevels map[slog.Level]bool
}

// NewRecordHandler wraps handler so that source location is only attached
// for showSourceForLevels and sensitive attributes are redacted. The wrapped
// handler should have AddSource: false.
func NewRecordHandler(handler slog.Handler, showSourceForLevels ...slog.Level) slog.Handler {
	levels := make(map[slog.Level]bool, len(showSourceForLevels))
	for _, level := range showSourceForLevels {
		levels[level] = true
	}
	return &recordHandler{handler: handler, showSourceLevels: levels}
}

func (h *recordHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(redact(a))
		return true
	})

	if h.showSourceLevels[r.Level] && r.PC != 0 {
		f, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		out.AddAttrs(slog.Any(slog.SourceKey, &slog.Source{
			Function: f.Function,
			File:     f.File,
			Line:     f.Line,
		}))
	}

	return h.handler.Handle(ctx, out)
}

func (h *recordHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = redact(a)
	}
	return &recordHandler{handler: h.handler.WithAttrs(redacted), showSourceLevels: h.showSourceLevels}
}

func (h *recordHandler) WithGroup(name string) slog.Handler {
	return &recordHandler{handler: h.handler.WithGroup(name), showSourceLevels: h.showSourceLevels}
}

func (h *recordHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func redact(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		out := make([]any, len(group))
		for i, ga := range group {
			out[i] = redact(ga)
		}
		return slog.Group(a.Key, out...)
	}
	if sensitiveKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, Redacted)
	}
	return a
}
