// Package logging provides the application's file logger.
package logging

import (
	"fmt"
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Level controls which messages reach the log file.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// Logger writes leveled messages to a rotating log file. Stream decoding
// and dispatch log through it so that dropped frames and raw server errors
// are diagnosable without ever reaching the user-facing output.
type Logger struct {
	logger *log.Logger
	level  Level
	closer io.Closer
}

// New creates a logger writing to path with rotation.
func New(path string, level Level) *Logger {
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	return &Logger{
		logger: log.New(file, "", log.LstdFlags),
		level:  level,
		closer: file,
	}
}

// NewWithWriter creates a logger writing to w. Used by tests.
func NewWithWriter(w io.Writer, level Level) *Logger {
	return &Logger{logger: log.New(w, "", 0), level: level}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{logger: log.New(io.Discard, "", 0), level: LevelError}
}

// Close releases the underlying log file.
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func (l *Logger) printf(level Level, tag, format string, args ...interface{}) {
	if l == nil || level > l.level {
		return
	}
	l.logger.Print(tag + " " + fmt.Sprintf(format, args...))
}

// Errorf logs an error-level message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.printf(LevelError, "[ERROR]", format, args...)
}

// Warnf logs a warning-level message.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.printf(LevelWarn, "[WARN]", format, args...)
}

// Infof logs an info-level message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.printf(LevelInfo, "[INFO]", format, args...)
}

// Debugf logs a debug-level message.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.printf(LevelDebug, "[DEBUG]", format, args...)
}
