// Package logging provides leveled, structured logging for the CLI.
// Output goes to stderr so report lines on stdout stay machine-parsable.
// Every run carries a correlation ID that is attached to all log lines
// and to history rows, tying a stored result back to its run.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents a log level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a log level string, defaulting to INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a structured logger with level support.
type Logger struct {
	mu     sync.Mutex
	output io.Writer
	level  Level
	json   bool
	runID  string
	fields map[string]interface{}
}

// Entry is a single log entry in JSON format.
type Entry struct {
	Timestamp string                 `json:"ts"`
	Level     string                 `json:"level"`
	Message   string                 `json:"msg"`
	RunID     string                 `json:"run_id,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

var defaultLogger = New()

// New creates a logger writing human-readable lines to stderr at INFO.
func New() *Logger {
	return &Logger{
		output: os.Stderr,
		level:  LevelInfo,
		fields: make(map[string]interface{}),
	}
}

// SetOutput sets the output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetJSON switches between JSON and human-readable output.
func (l *Logger) SetJSON(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.json = enabled
}

// SetRunID attaches a run correlation ID to every subsequent entry.
func (l *Logger) SetRunID(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.runID = id
}

// WithField returns a child logger with the given field added.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	fields := make(map[string]interface{}, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value

	return &Logger{
		output: l.output,
		level:  l.level,
		json:   l.json,
		runID:  l.runID,
		fields: fields,
	}
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	if l.json {
		entry := Entry{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Level:     level.String(),
			Message:   msg,
			RunID:     l.runID,
		}
		if len(l.fields) > 0 {
			entry.Fields = l.fields
		}
		data, err := json.Marshal(entry)
		if err != nil {
			fmt.Fprintf(l.output, "ERROR: failed to marshal log entry: %v\n", err)
			return
		}
		fmt.Fprintln(l.output, string(data))
		return
	}

	parts := []string{time.Now().Format("2006/01/02 15:04:05")}
	if l.runID != "" {
		parts = append(parts, fmt.Sprintf("[%s]", shortID(l.runID)))
	}
	parts = append(parts, fmt.Sprintf("[%s]", level.String()), msg)
	if len(l.fields) > 0 {
		fieldParts := make([]string, 0, len(l.fields))
		for k, v := range l.fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%v", k, v))
		}
		parts = append(parts, fmt.Sprintf("{%s}", strings.Join(fieldParts, ", ")))
	}
	fmt.Fprintln(l.output, strings.Join(parts, " "))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) { l.log(LevelDebug, format, args...) }

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) { l.log(LevelInfo, format, args...) }

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) { l.log(LevelWarn, format, args...) }

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) { l.log(LevelError, format, args...) }

// --- Package-level functions using the default logger ---

// Default returns the default logger.
func Default() *Logger {
	return defaultLogger
}

// SetLevel sets the default logger's minimum level.
func SetLevel(level Level) { defaultLogger.SetLevel(level) }

// SetJSON switches the default logger's output format.
func SetJSON(enabled bool) { defaultLogger.SetJSON(enabled) }

// SetRunID sets the default logger's run correlation ID.
func SetRunID(id string) { defaultLogger.SetRunID(id) }

// SetOutput sets the default logger's output destination.
func SetOutput(w io.Writer) { defaultLogger.SetOutput(w) }

// Debug logs a debug message using the default logger.
func Debug(format string, args ...interface{}) { defaultLogger.log(LevelDebug, format, args...) }

// Info logs an info message using the default logger.
func Info(format string, args ...interface{}) { defaultLogger.log(LevelInfo, format, args...) }

// Warn logs a warning message using the default logger.
func Warn(format string, args ...interface{}) { defaultLogger.log(LevelWarn, format, args...) }

// Error logs an error message using the default logger.
func Error(format string, args ...interface{}) { defaultLogger.log(LevelError, format, args...) }
