package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

var logLevelNames = map[LogLevel]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
	LevelOff:   "OFF",
}

// New returns a logger writing to w. A nil writer falls back to the standard logger.
func New(level LogLevel, w io.Writer) *Logger {
	l := &Logger{MinLevel: level}
	if w != nil {
		l.Out = log.New(w, "", 0)
	}
	return l
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	return New(LevelOff, io.Discard)
}

// ParseLevel maps a flag or env value onto a level; unknown names fall back to info.
func ParseLevel(name string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "off", "none":
		return LevelOff
	default:
		return LevelInfo
	}
}

func (lvl LogLevel) String() string {
	if name, ok := logLevelNames[lvl]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(lvl))
}

// SetLogLevel sets the minimum log level
func (l *Logger) SetLogLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.MinLevel = level
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level LogLevel) bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return level >= l.MinLevel && l.MinLevel != LevelOff
}

func (l *Logger) log(level LogLevel, component, message string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	levelStr := logLevelNames[level]
	formattedMsg := fmt.Sprintf(message, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	printf := log.Printf
	if l.Out != nil {
		printf = l.Out.Printf
	}

	if component != "" {
		printf("[%s] [%s] [%s] %s", timestamp, levelStr, component, formattedMsg)
	} else {
		printf("[%s] [%s] %s", timestamp, levelStr, formattedMsg)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(component, message string, args ...interface{}) {
	l.log(LevelDebug, component, message, args...)
}

// Info logs an info message
func (l *Logger) Info(component, message string, args ...interface{}) {
	l.log(LevelInfo, component, message, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(component, message string, args ...interface{}) {
	l.log(LevelWarn, component, message, args...)
}

// Error logs an error message
func (l *Logger) Error(component, message string, args ...interface{}) {
	l.log(LevelError, component, message, args...)
}

// Fatal logs an error message and exits
func (l *Logger) Fatal(component, message string, args ...interface{}) {
	l.log(LevelError, component, message, args...)
	os.Exit(1)
}
