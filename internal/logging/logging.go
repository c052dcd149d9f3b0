// Package logging provides leveled logging on top of the standard library
// logger. The level is taken from the DEBUG and LOG_LEVEL environment
// variables and can be forced to debug at startup.
package logging

import (
	"log"
	"os"
	"strings"
	"sync"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu           sync.Mutex
	currentLevel = levelFromEnv()
)

func levelFromEnv() LogLevel {
	if debug := strings.ToLower(os.Getenv("DEBUG")); debug == "1" || debug == "true" || debug == "yes" || debug == "on" {
		return LevelDebug
	}
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetDebug forces debug-level logging, used by the --debug flag.
func SetDebug() {
	mu.Lock()
	currentLevel = LevelDebug
	mu.Unlock()
}

func level() LogLevel {
	mu.Lock()
	defer mu.Unlock()
	return currentLevel
}

// Debug logs a debug message.
func Debug(format string, args ...interface{}) {
	if level() <= LevelDebug {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// Info logs an info message.
func Info(format string, args ...interface{}) {
	if level() <= LevelInfo {
		log.Printf("[INFO] "+format, args...)
	}
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	if level() <= LevelWarn {
		log.Printf("[WARN] "+format, args...)
	}
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	if level() <= LevelError {
		log.Printf("[ERROR] "+format, args...)
	}
}

// Fatal logs an error message and exits.
func Fatal(format string, args ...interface{}) {
	log.Fatalf("[FATAL] "+format, args...)
}
