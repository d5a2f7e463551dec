package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// consoleOut receives console logs. Stdout is left to the generated script.
var consoleOut io.Writer = os.Stderr

// SlogManager manages slog-based logging with optional Graylog output.
type SlogManager struct {
	logger *slog.Logger

	// graylog is closed by Close when it is an io.Closer
	graylog MessageWriter
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup initializes the logging system. Records go to file when one is
// given and to the console otherwise. A non-nil graylog writer adds GELF
// output, and session adds its attributes to every record.
func (m *SlogManager) Setup(file io.Writer, level string, graylog MessageWriter, session SessionAttrs) {
	lvl := parseLevel(level)
	m.graylog = graylog

	// Common handler options with RFC3339 time formatting
	handlerOpts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handlers []slog.Handler
	if file != nil {
		handlers = append(handlers, slog.NewTextHandler(file, handlerOpts))
	} else {
		handlers = append(handlers, slog.NewTextHandler(consoleOut, handlerOpts))
	}
	if graylog != nil {
		handlers = append(handlers, NewGelfHandler(graylog, lvl, "eventpy"))
	}

	var handler slog.Handler = newFanout(handlers...)
	if session != nil {
		handler = &sessionHandler{inner: handler, attrs: session}
	}

	m.logger = slog.New(handler)
	m.logger.Debug("Logging initialized", "level", level)
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		// Return a default logger if Setup hasn't been called
		return slog.Default()
	}
	return m.logger
}

// Close releases the Graylog connection if there is one.
func (m *SlogManager) Close() error {
	if c, ok := m.graylog.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
