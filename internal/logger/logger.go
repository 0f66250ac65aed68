package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a log line
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logger writes component-tagged lines to stderr. Debug and Info lines are
// only written when the verbose check passes.
type Logger struct {
	component string
	verbose   func() bool
	out       *output
}

// output is shared between loggers derived from the same root
type output struct {
	mu sync.Mutex
	w  io.Writer
}

// Field represents a key-value pair attached to a log line
type Field struct {
	Key   string
	Value any
}

// New creates a logger for a component. verbose may be nil.
func New(component string, verbose func() bool) *Logger {
	return &Logger{
		component: component,
		verbose:   verbose,
		out:       &output{w: os.Stderr},
	}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{out: &output{w: io.Discard}}
}

// WithComponent derives a logger sharing the same output and verbosity
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component: component,
		verbose:   l.verbose,
		out:       l.out,
	}
}

// SetOutput redirects the logger and every logger derived from it
func (l *Logger) SetOutput(w io.Writer) {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	l.out.w = w
}

// IsVerbose reports whether debug output is enabled
func (l *Logger) IsVerbose() bool {
	return l != nil && l.verbose != nil && l.verbose()
}

// Debug logs debug messages (only when verbose)
func (l *Logger) Debug(msg string, fields ...Field) {
	if l.IsVerbose() {
		l.write(LevelDebug, msg, fields)
	}
}

// Info logs informational messages (only when verbose)
func (l *Logger) Info(msg string, fields ...Field) {
	if l.IsVerbose() {
		l.write(LevelInfo, msg, fields)
	}
}

// Warn logs warning messages (always shown)
func (l *Logger) Warn(msg string, fields ...Field) {
	l.write(LevelWarn, msg, fields)
}

// Error logs error messages (always shown)
func (l *Logger) Error(msg string, fields ...Field) {
	l.write(LevelError, msg, fields)
}

func (l *Logger) write(level Level, msg string, fields []Field) {
	if l == nil || l.out == nil {
		return
	}

	component := l.component
	if component == "" {
		component = "main"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s [%s] %s", time.Now().Format("15:04:05.000"), level, component, msg)
	if len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			parts = append(parts, fmt.Sprintf("%s=%v", f.Key, f.Value))
		}
		b.WriteString(" [" + strings.Join(parts, " ") + "]")
	}
	b.WriteByte('\n')

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	// Nothing sensible to do if the log sink itself fails.
	_, _ = io.WriteString(l.out.w, b.String())
}

// Helper functions for common field types
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}
