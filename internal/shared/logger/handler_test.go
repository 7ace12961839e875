package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferedLogger(levels ...slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewRecordHandler(base, levels...)), &buf
}

func TestRecordHandler_Source(t *testing.T) {
	tests := []struct {
		name       string
		levels     []slog.Level
		log        func(l *slog.Logger)
		wantSource bool
	}{
		{"info without source", []slog.Level{slog.LevelWarn, slog.LevelError}, func(l *slog.Logger) { l.Info("m") }, false},
		{"warn with source", []slog.Level{slog.LevelWarn, slog.LevelError}, func(l *slog.Logger) { l.Warn("m") }, true},
		{"error with source", []slog.Level{slog.LevelWarn, slog.LevelError}, func(l *slog.Logger) { l.Error("m") }, true},
		{"debug mode shows info", []slog.Level{slog.LevelDebug, slog.LevelInfo}, func(l *slog.Logger) { l.Info("m") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newBufferedLogger(tt.levels...)
			tt.log(l)
			if tt.wantSource {
				assert.Contains(t, buf.String(), "source=")
				assert.Contains(t, buf.String(), "handler_test.go")
			} else {
				assert.NotContains(t, buf.String(), "source=")
			}
		})
	}
}

func TestRecordHandler_RedactsSecrets(t *testing.T) {
	l, buf := newBufferedLogger()

	l.Info("exchange", "code", "1234.5678", "team_id", "T1", "ACCESS_TOKEN", "xoxp-secret")
	out := buf.String()
	assert.NotContains(t, out, "1234.5678")
	assert.NotContains(t, out, "xoxp-secret")
	assert.Contains(t, out, "code="+Redacted)
	assert.Contains(t, out, "team_id=T1")
}

func TestRecordHandler_RedactsWithAttrsAndGroups(t *testing.T) {
	l, buf := newBufferedLogger()

	l.With("client_secret", "shh").Info("m", slog.Group("grant", "bot_token", "xoxb-1", "scope", "a,b"))
	out := buf.String()
	assert.NotContains(t, out, "shh")
	assert.NotContains(t, out, "xoxb-1")
	assert.Contains(t, out, "grant.scope=a,b")
}

func TestInterface_SourceIsCaller(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, nil)
	log := NewLoggerWithSlog(slog.New(NewRecordHandler(base, slog.LevelWarn)))

	log.Warnw("grant upsert failed", "code", "abc12345", "provider", "slack")

	out := buf.String()
	assert.Contains(t, out, "handler_test.go")
	assert.Contains(t, out, "code="+Redacted)
	assert.Contains(t, out, "provider=slack")
}
