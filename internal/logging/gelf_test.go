package logging

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []*gelf.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessage(m *gelf.Message) error {
	w.messages = append(w.messages, m)
	return w.err
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestGelfHandler_Message(t *testing.T) {
	w := &recordingWriter{}
	logger := slog.New(NewGelfHandler(w, slog.LevelDebug, "eventpy"))

	logger.Warn("event failed", "event", 7, "source", "Map001.json", "ok", false)

	require.Len(t, w.messages, 1)
	m := w.messages[0]
	assert.Equal(t, "1.1", m.Version)
	assert.Equal(t, "event failed", m.Short)
	assert.Equal(t, int32(4), m.Level)
	assert.Equal(t, "eventpy", m.Facility)
	assert.NotZero(t, m.TimeUnix)
	assert.Equal(t, int64(7), m.Extra["_event"])
	assert.Equal(t, "Map001.json", m.Extra["_source"])
	assert.Equal(t, false, m.Extra["_ok"])
	assert.Equal(t, "WARN", m.Extra["_level_name"])
}

func TestGelfHandler_AttrsAndGroups(t *testing.T) {
	w := &recordingWriter{}
	logger := slog.New(NewGelfHandler(w, slog.LevelInfo, "eventpy")).
		With("run", "abc").
		WithGroup("stats")

	logger.Info("run finished", "failed", 2, slog.Group("time", slog.Duration("took", 1500*time.Millisecond)))

	require.Len(t, w.messages, 1)
	extra := w.messages[0].Extra
	assert.Equal(t, "abc", extra["_run"])
	assert.Equal(t, int64(2), extra["_stats.failed"])
	assert.Equal(t, "1.5s", extra["_stats.time.took"])
}

func TestGelfHandler_Levels(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  int32
	}{
		{slog.LevelDebug, 7},
		{slog.LevelInfo, 6},
		{slog.LevelWarn, 4},
		{slog.LevelError, 3},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, syslogLevel(tt.level))
		})
	}

	h := NewGelfHandler(&recordingWriter{}, slog.LevelWarn, "")
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestGelfHandler_WriteError(t *testing.T) {
	w := &recordingWriter{err: errors.New("connection refused")}
	h := NewGelfHandler(w, slog.LevelInfo, "")

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0))
	assert.Error(t, err)
}
