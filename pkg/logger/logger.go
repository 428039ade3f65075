// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

// Package logger provides unified logging functionality for the application.
//
// All log lines go to stderr (and optionally a file); stdout is reserved for
// the report.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Log levels
const (
	LevelTrace   = "trace"
	LevelDebug   = "debug"
	LevelVerbose = "verbose"
	LevelInfo    = "info"
	LevelWarn    = "warn"
	LevelError   = "error"
)

// Log output types
const (
	TypeConsole = "console"
	TypeFile    = "file"
	TypeBoth    = "both"
)

// LogLevel represents the log level as an enum-like type
type LogLevel int

const (
	LogLevelError   LogLevel = iota // 0 - Least verbose (only errors)
	LogLevelWarn                    // 1
	LogLevelInfo                    // 2
	LogLevelVerbose                 // 3
	LogLevelDebug                   // 4
	LogLevelTrace                   // 5 - Most verbose (everything)
	LogLevelNone                    // 6 - For invalid levels
)

var levelTags = map[LogLevel]string{
	LogLevelError:   "ERROR",
	LogLevelWarn:    "WARN",
	LogLevelInfo:    "INFO",
	LogLevelVerbose: "VERBOSE",
	LogLevelDebug:   "DEBUG",
	LogLevelTrace:   "TRACE",
}

// ParseLogLevel converts a string to LogLevel
func ParseLogLevel(levelStr string) LogLevel {
	switch strings.ToLower(levelStr) {
	case LevelError:
		return LogLevelError
	case LevelWarn:
		return LogLevelWarn
	case LevelInfo:
		return LogLevelInfo
	case LevelVerbose:
		return LogLevelVerbose
	case LevelDebug:
		return LogLevelDebug
	case LevelTrace:
		return LogLevelTrace
	default:
		return LogLevelNone
	}
}

// IsValidLevel reports whether levelStr names a known level.
func IsValidLevel(levelStr string) bool {
	return ParseLogLevel(levelStr) != LogLevelNone
}

// Logger provides logging functionality for the application
type Logger struct {
	out            *log.Logger
	console        io.Writer
	file           *os.File
	level          LogLevel
	showTimestamps bool
	mu             sync.Mutex
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// GetLogger returns the default logger instance
func GetLogger() *Logger {
	once.Do(func() {
		level := ParseLogLevel(os.Getenv("LOG_LEVEL"))
		if level == LogLevelNone {
			level = LogLevelInfo
		}
		defaultLogger = &Logger{
			out:     log.New(os.Stderr, "", 0),
			console: os.Stderr,
			level:   level,
		}
	})
	return defaultLogger
}

// SetLevel sets the logger level. Unknown levels fall back to info.
func (l *Logger) SetLevel(level string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = ParseLogLevel(level)
	if l.level == LogLevelNone {
		l.level = LogLevelInfo
	}
}

// SetShowTimestamps sets the visibility of timestamps in log messages
func (l *Logger) SetShowTimestamps(show bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.showTimestamps = show
}

// SetOutput replaces the console writer and closes any open log file.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closeFileLocked()
	l.console = w
	l.out.SetOutput(w)
}

// Configure routes log output according to logType. console writes to
// console, file writes only to logFile, both writes to each.
func (l *Logger) Configure(logType, logFile string, console io.Writer) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closeFileLocked()
	l.console = console

	switch strings.ToLower(logType) {
	case "", TypeConsole:
		l.out.SetOutput(console)
		return nil
	case TypeFile, TypeBoth:
	default:
		l.out.SetOutput(console)
		return fmt.Errorf("invalid log type: %s (must be console, file, or both)", logType)
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		l.out.SetOutput(console)
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		l.out.SetOutput(console)
		return fmt.Errorf("failed to open log file: %w", err)
	}
	l.file = file
	if strings.ToLower(logType) == TypeBoth {
		l.out.SetOutput(io.MultiWriter(console, file))
	} else {
		l.out.SetOutput(file)
	}
	return nil
}

// Close releases the log file, if any, and logs to the console again.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closeFileLocked()
	l.out.SetOutput(l.console)
}

func (l *Logger) closeFileLocked() {
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
}

func (l *Logger) emit(level, threshold LogLevel, override bool, prefix, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level > threshold {
		return
	}

	message := fmt.Sprintf(format, args...)
	if prefix != "" {
		message = fmt.Sprintf("[%s] %s", prefix, message)
	}
	tag := levelTags[level]
	if override {
		tag = "*" + tag
	}
	levelStr := fmt.Sprintf("%8s", tag)
	if l.showTimestamps {
		timestamp := time.Now().Format("2006-01-02 15:04:05")
		message = fmt.Sprintf("%s %s %s", timestamp, levelStr, message)
	} else {
		message = fmt.Sprintf("%s %s", levelStr, message)
	}
	_ = l.out.Output(3, message)
}

func (l *Logger) threshold() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.emit(LogLevelError, l.threshold(), false, "", format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.emit(LogLevelWarn, l.threshold(), false, "", format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.emit(LogLevelInfo, l.threshold(), false, "", format, args...)
}

func (l *Logger) Verbose(format string, args ...interface{}) {
	l.emit(LogLevelVerbose, l.threshold(), false, "", format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.emit(LogLevelDebug, l.threshold(), false, "", format, args...)
}

func (l *Logger) Trace(format string, args ...interface{}) {
	l.emit(LogLevelTrace, l.threshold(), false, "", format, args...)
}

// ScopedLogger provides component-specific logging with optional level override
type ScopedLogger struct {
	prefix   string
	level    LogLevel
	override bool // Track if this logger has a level override
}

// NewScopedLogger creates a new scoped logger with an optional log level override.
// Without an override the logger follows the default logger's level.
func NewScopedLogger(prefix, logLevel string) *ScopedLogger {
	level := ParseLogLevel(logLevel)
	return &ScopedLogger{
		prefix:   prefix,
		level:    level,
		override: level != LogLevelNone,
	}
}

func (sl *ScopedLogger) threshold() LogLevel {
	if sl.override {
		return sl.level
	}
	return GetLogger().threshold()
}

func (sl *ScopedLogger) Error(format string, args ...interface{}) {
	GetLogger().emit(LogLevelError, sl.threshold(), sl.override, sl.prefix, format, args...)
}

func (sl *ScopedLogger) Warn(format string, args ...interface{}) {
	GetLogger().emit(LogLevelWarn, sl.threshold(), sl.override, sl.prefix, format, args...)
}

func (sl *ScopedLogger) Info(format string, args ...interface{}) {
	GetLogger().emit(LogLevelInfo, sl.threshold(), sl.override, sl.prefix, format, args...)
}

func (sl *ScopedLogger) Verbose(format string, args ...interface{}) {
	GetLogger().emit(LogLevelVerbose, sl.threshold(), sl.override, sl.prefix, format, args...)
}

func (sl *ScopedLogger) Debug(format string, args ...interface{}) {
	GetLogger().emit(LogLevelDebug, sl.threshold(), sl.override, sl.prefix, format, args...)
}

func (sl *ScopedLogger) Trace(format string, args ...interface{}) {
	GetLogger().emit(LogLevelTrace, sl.threshold(), sl.override, sl.prefix, format, args...)
}

// TraceFunction logs function entry and exit with timing
func (sl *ScopedLogger) TraceFunction(funcName string) func() {
	if sl.threshold() < LogLevelTrace {
		return func() {}
	}

	start := time.Now()
	sl.Trace("ENTER: %s", funcName)

	return func() {
		sl.Trace("EXIT: %s (took %v)", funcName, time.Since(start))
	}
}
