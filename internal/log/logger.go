package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Level represents log level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// Logger provides structured logging plus the plain console lines the
// monitor emits for operators (alert lines, exports).
type Logger struct {
	level   Level
	output  io.Writer
	console io.Writer
}

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// NewLogger creates a new logger with the specified level
func NewLogger(level Level) *Logger {
	return &Logger{
		level:   level,
		output:  os.Stderr,
		console: os.Stdout,
	}
}

// SetOutput sets the output writer for structured entries
func (l *Logger) SetOutput(w io.Writer) {
	l.output = w
}

// SetConsole sets the writer for plain console lines
func (l *Logger) SetConsole(w io.Writer) {
	l.console = w
}

// SetLevel sets the log level
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// log writes a structured log entry
func (l *Logger) log(level Level, message string, fields map[string]interface{}) {
	if level < l.level {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Level:     levelNames[level],
		Message:   message,
		Fields:    fields,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		// Fallback to plain text if JSON marshaling fails
		fmt.Fprintf(l.output, "[%s] %s: %s\n", entry.Timestamp, entry.Level, message)
		return
	}

	fmt.Fprintln(l.output, string(data))
}

// Debug logs a debug message
func (l *Logger) Debug(message string, fields map[string]interface{}) {
	l.log(LevelDebug, message, fields)
}

// Info logs an info message
func (l *Logger) Info(message string, fields map[string]interface{}) {
	l.log(LevelInfo, message, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, fields map[string]interface{}) {
	l.log(LevelWarn, message, fields)
}

// Error logs an error message
func (l *Logger) Error(message string, fields map[string]interface{}) {
	l.log(LevelError, message, fields)
}

// LogAlert emits the operator-facing alert line on the console and a
// structured entry on the log output. levelName is the alert severity
// ("INFO", "WARNING" or "CRITICAL"), not the log level.
func (l *Logger) LogAlert(levelName, message string) {
	fmt.Fprintf(l.console, "ALERT [%s]: %s\n", levelName, message)
	l.Warn("alert triggered", map[string]interface{}{
		"alert_level": levelName,
		"message":     message,
	})
}

// LogVitals logs one published vitals sample.
func (l *Logger) LogVitals(heartRate, spO2, battery float64, finger bool) {
	l.Info("vitals sample", map[string]interface{}{
		"heart_rate": heartRate,
		"spo2":       spO2,
		"battery":    battery,
		"finger":     finger,
	})
}

// LogConfigLoad logs a preferences load event
func (l *Logger) LogConfigLoad(success bool, path string, err error) {
	fields := map[string]interface{}{
		"path": path,
	}
	if err != nil {
		fields["error"] = err.Error()
	}

	if success {
		l.Info("preferences loaded", fields)
	} else {
		l.Error("preferences load failed", fields)
	}
}

// LogError logs a general error
func (l *Logger) LogError(component string, err error, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["component"] = component
	if err != nil {
		fields["error"] = err.Error()
	}
	l.Error("error occurred", fields)
}

// Console returns the plain console writer, for operations that print
// directly (CSV export, system info).
func (l *Logger) Console() io.Writer {
	return l.console
}

// ParseLevel parses a log level string
func ParseLevel(levelStr string) Level {
	switch levelStr {
	case "DEBUG", "debug":
		return LevelDebug
	case "INFO", "info":
		return LevelInfo
	case "WARN", "warn", "WARNING", "warning":
		return LevelWarn
	case "ERROR", "error":
		return LevelError
	default:
		return LevelInfo
	}
}
