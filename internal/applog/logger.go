// Package applog provides leveled, structured logging for the editor
// core. It mirrors the hand-rolled logger the rest of this codebase's
// lineage uses rather than adopting a third-party logging framework:
// no repository retrieved alongside this one reaches for zap, zerolog,
// or logrus, so there is no ecosystem library to bind here.
package applog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is the severity of a log entry.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is a leveled logger that writes to an io.Writer, carrying an
// immutable set of structured fields inherited by children created with
// With.
type Logger struct {
	mu     *sync.Mutex
	out    io.Writer
	level  Level
	prefix string
	fields map[string]any
}

// New creates a Logger writing to out at the given minimum level. A nil
// out defaults to os.Stderr.
func New(out io.Writer, level Level, prefix string) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		mu:     &sync.Mutex{},
		out:    out,
		level:  level,
		prefix: prefix,
		fields: nil,
	}
}

// Discard returns a Logger that writes nowhere, used as a safe default
// before a Session finishes wiring its transcript.
func Discard() *Logger {
	return New(io.Discard, Error+1, "")
}

// With returns a child logger carrying an additional structured field.
func (l *Logger) With(key string, value any) *Logger {
	next := make(map[string]any, len(l.fields)+1)
	for k, v := range l.fields {
		next[k] = v
	}
	next[key] = value
	return &Logger{mu: l.mu, out: l.out, level: l.level, prefix: l.prefix, fields: next}
}

// SetLevel adjusts the minimum level written by this logger only. The
// level is copied into each child at With time, so children already
// created keep the level they were created with.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(Debug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(Info, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(Warn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(Error, format, args...) }

func (l *Logger) logf(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	ts := time.Now().Format("2006-01-02T15:04:05.000")
	line := fmt.Sprintf("%s [%s]", ts, level)
	if l.prefix != "" {
		line += " " + l.prefix
	}
	line += ": " + msg

	if len(l.fields) > 0 {
		line += " {"
		first := true
		for k, v := range l.fields {
			if !first {
				line += ", "
			}
			line += fmt.Sprintf("%s=%v", k, v)
			first = false
		}
		line += "}"
	}

	fmt.Fprintln(l.out, line)
}
