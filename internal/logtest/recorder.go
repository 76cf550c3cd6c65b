// Package logtest records commonlog output for assertions in tests.
package logtest

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"
)

type Entry struct {
	Level   commonlog.Level
	Message string
	Values  []any
}

// Recorder is a commonlog.Logger that keeps every message it receives.
type Recorder struct {
	commonlog.MockLogger
	Entries []Entry
}

func (r *Recorder) AllowLevel(commonlog.Level) bool { return true }

func (r *Recorder) Log(level commonlog.Level, _ int, message string, keysAndValues ...any) {
	r.Entries = append(r.Entries, Entry{Level: level, Message: message, Values: keysAndValues})
}

func (r *Recorder) Logf(level commonlog.Level, depth int, format string, args ...any) {
	r.Log(level, depth, fmt.Sprintf(format, args...))
}

func (r *Recorder) Critical(message string, keysAndValues ...any) {
	r.Log(commonlog.Critical, 0, message, keysAndValues...)
}

func (r *Recorder) Criticalf(format string, args ...any) {
	r.Logf(commonlog.Critical, 0, format, args...)
}

func (r *Recorder) Error(message string, keysAndValues ...any) {
	r.Log(commonlog.Error, 0, message, keysAndValues...)
}

func (r *Recorder) Errorf(format string, args ...any) {
	r.Logf(commonlog.Error, 0, format, args...)
}

func (r *Recorder) Warning(message string, keysAndValues ...any) {
	r.Log(commonlog.Warning, 0, message, keysAndValues...)
}

func (r *Recorder) Warningf(format string, args ...any) {
	r.Logf(commonlog.Warning, 0, format, args...)
}

func (r *Recorder) Notice(message string, keysAndValues ...any) {
	r.Log(commonlog.Notice, 0, message, keysAndValues...)
}

func (r *Recorder) Noticef(format string, args ...any) {
	r.Logf(commonlog.Notice, 0, format, args...)
}

func (r *Recorder) Info(message string, keysAndValues ...any) {
	r.Log(commonlog.Info, 0, message, keysAndValues...)
}

func (r *Recorder) Infof(format string, args ...any) {
	r.Logf(commonlog.Info, 0, format, args...)
}

func (r *Recorder) Debug(message string, keysAndValues ...any) {
	r.Log(commonlog.Debug, 0, message, keysAndValues...)
}

func (r *Recorder) Debugf(format string, args ...any) {
	r.Logf(commonlog.Debug, 0, format, args...)
}

// Messages returns the messages logged at level.
func (r *Recorder) Messages(level commonlog.Level) []string {
	var out []string
	for _, e := range r.Entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Contains reports whether any message at level contains substr.
func (r *Recorder) Contains(level commonlog.Level, substr string) bool {
	for _, m := range r.Messages(level) {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}
