package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewZerolog builds a console-format zerolog.Logger at the named level.
func NewZerolog(w io.Writer, level string, noColor bool) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch strings.ToUpper(level) {
	case "TRACE":
		lvl = zerolog.TraceLevel
	case "DEBUG":
		lvl = zerolog.DebugLevel
	case "WARN":
		lvl = zerolog.WarnLevel
	case "ERROR":
		lvl = zerolog.ErrorLevel
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}).Level(lvl).With().Timestamp().Logger()
}

// TranslatorLogger adapts zerolog.Logger to the translate.Logger interface.
type TranslatorLogger struct {
	logger zerolog.Logger
}

// NewTranslatorLogger creates a new TranslatorLogger wrapping a zerolog.Logger.
func NewTranslatorLogger(logger zerolog.Logger) *TranslatorLogger {
	return &TranslatorLogger{logger: logger}
}

// Debug logs a debug message with optional key-value pairs.
func (l *TranslatorLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(toFields(keysAndValues)).Msg(msg)
}

// Info logs an info message with optional key-value pairs.
func (l *TranslatorLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info().Fields(toFields(keysAndValues)).Msg(msg)
}

// Error logs an error message with optional key-value pairs.
func (l *TranslatorLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error().Fields(toFields(keysAndValues)).Msg(msg)
}

// toFields converts key-value pairs to a map for zerolog.
func toFields(keysAndValues []any) map[string]any {
	fields := make(map[string]any, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return fields
}
