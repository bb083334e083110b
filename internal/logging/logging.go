// Package logging builds the leveled logger shared by the CLI and the UI.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

// AppName is attached to every log line.
const AppName = "taskpad"

// New returns a logger writing to w.
// Lines below level are dropped; debug forces log.LevelDebug.
func New(w io.Writer, level string, debug bool) log.Logger {
	lvl := ParseLevel(level)
	if debug {
		lvl = log.LevelDebug
	}

	logger := log.With(log.NewStdLogger(w),
		"ts", log.Timestamp(time.DateTime),
		"app", AppName,
	)
	return log.NewFilter(logger, log.FilterLevel(lvl))
}

// Discard returns a logger that drops everything.
func Discard() log.Logger {
	return log.NewStdLogger(io.Discard)
}

// ParseLevel maps a config value to a level. Unknown or empty values mean warn.
func ParseLevel(level string) log.Level {
	if level == "" {
		return log.LevelWarn
	}
	lvl := log.ParseLevel(level)
	if lvl == log.LevelInfo && !strings.EqualFold(level, "info") {
		// kratos falls back to info for unknown names
		return log.LevelWarn
	}
	return lvl
}
