// Package sanitizerlog provides structured, level-gated logging for the
// sanitizer service, adapted from the proxy's own logger package — same
// fixed-width line shape, same level-gating, renamed for the sanitizer's
// modules ("RULE", "CONFIG", "HTTP", ...) instead of the proxy's.
//
// Each entry is written as a single line with fixed-width columns:
//
//	2006-01-02 15:04:05.000 | MODULE       | ACTION               | LEVEL | message
//
// Levels (lowest to highest): debug, info, warn, error.
// Entries below the configured minimum level are silently dropped.
//
// Usage:
//
//	log := sanitizerlog.New("CONFIG", cfg.LogLevel)
//	log.Info("rule_config_loaded", "merged 4 user rules over the built-in catalog")
//	log.Errorf("rule_config_invalid", "rule %q: %v", id, err)
package sanitizerlog

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"pii-sanitizer/meta"
)

// Level represents a log severity.
type Level int

// Log severity constants, ordered lowest to highest.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger writes structured log lines for a single module.
type Logger struct {
	module string
	level  Level
	out    *log.Logger
}

// New creates a Logger for the given module, gated at the given level
// string. Unrecognized level strings default to "info".
func New(module, levelStr string) *Logger {
	return &Logger{
		module: strings.ToUpper(module),
		level:  parseLevel(levelStr),
		out:    log.New(os.Stderr, "", 0),
	}
}

// SetLevel changes the minimum log level at runtime.
func (l *Logger) SetLevel(levelStr string) {
	l.level = parseLevel(levelStr)
}

func (l *Logger) Debug(action, msg string) { l.write(LevelDebug, "DEBUG", action, msg) }
func (l *Logger) Info(action, msg string)  { l.write(LevelInfo, "INFO ", action, msg) }
func (l *Logger) Warn(action, msg string)  { l.write(LevelWarn, "WARN ", action, msg) }
func (l *Logger) Error(action, msg string) { l.write(LevelError, "ERROR", action, msg) }

func (l *Logger) Debugf(action, format string, args ...any) {
	l.Debug(action, fmt.Sprintf(format, args...))
}
func (l *Logger) Infof(action, format string, args ...any) {
	l.Info(action, fmt.Sprintf(format, args...))
}
func (l *Logger) Warnf(action, format string, args ...any) {
	l.Warn(action, fmt.Sprintf(format, args...))
}
func (l *Logger) Errorf(action, format string, args ...any) {
	l.Error(action, fmt.Sprintf(format, args...))
}

// Fatal logs at ERROR level and then calls os.Exit(1).
func (l *Logger) Fatal(action, msg string) {
	l.Error(action, msg)
	os.Exit(1)
}

// Fatalf logs a formatted message at ERROR level and then calls os.Exit(1).
func (l *Logger) Fatalf(action, format string, args ...any) {
	l.Fatal(action, fmt.Sprintf(format, args...))
}

// RuleApplied logs a single redaction at DEBUG level, naming the field path,
// the rule that fired, and what kind of redaction it performed. Call sites
// loop over a processed node's meta.Remarks after ProcessRoot/ProcessMap
// returns; this is a hot path on large payloads, so it's gated at DEBUG
// rather than INFO.
func (l *Logger) RuleApplied(path, ruleID string, kind meta.RemarkType) {
	l.Debugf("rule_applied", "path=%s rule=%s action=%s", path, ruleID, kind)
}

// Summary logs one line per processed payload, recording how many remarks
// and errors it accumulated — WARN if any errors were recorded (a rule's
// redaction returned an error), INFO otherwise.
func (l *Logger) Summary(path string, remarkCount, errorCount int) {
	if errorCount > 0 {
		l.Warnf("sanitize_summary", "path=%s remarks=%d errors=%d", path, remarkCount, errorCount)
		return
	}
	l.Infof("sanitize_summary", "path=%s remarks=%d", path, remarkCount)
}

func (l *Logger) write(level Level, levelLabel, action, msg string) {
	if level < l.level {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05.000")
	l.out.Printf("%s | %-12s | %-22s | %s | %s", ts, l.module, action, levelLabel, msg)
}

func parseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
