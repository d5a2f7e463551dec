// Package logging sets up the slog, zerolog and GELF outputs of a
// conversion session.
package logging

import (
	"path/filepath"
	"time"
)

// SessionLogPath names the log file of a session started at start:
// <dir>/<app>.<yyyymmdd_hhmmss>.log with the time in UTC.
func SessionLogPath(dir, app string, start time.Time) string {
	return filepath.Join(dir, app+"."+start.UTC().Format("20060102_150405")+".log")
}
