package logger

import (
	"log"
	"sync"
)

// Logger provides component-scoped logging with levels

type Logger struct {
	MinLevel LogLevel
	// Out receives formatted lines. Nil means the standard logger.
	Out *log.Logger
	mu  sync.Mutex
}

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	// LevelOff silences every message, including Fatal output.
	LevelOff
)
