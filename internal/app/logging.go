package app

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel is the severity of a log line.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var levelNames = map[LogLevel]string{
	LogLevelDebug: "DEBUG",
	LogLevelInfo:  "INFO",
	LogLevelWarn:  "WARN",
	LogLevelError: "ERROR",
}

func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseLogLevel reads a level name, ignoring case. "warning" is accepted
// for warn and anything unrecognized is info.
func ParseLogLevel(s string) LogLevel {
	s = strings.ToUpper(s)
	if s == "WARNING" {
		return LogLevelWarn
	}
	for l, name := range levelNames {
		if name == s {
			return l
		}
	}
	return LogLevelInfo
}

// LoggerConfig configures NewLogger. A nil Output means os.Stderr.
type LoggerConfig struct {
	Level  LogLevel
	Output io.Writer
	Prefix string
}

// DefaultLoggerConfig logs info and above to stderr.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{Level: LogLevelInfo, Output: os.Stderr, Prefix: "runpad"}
}

// sink is the state a logger shares with every logger derived from it.
type sink struct {
	mu    sync.Mutex
	level LogLevel
	out   io.Writer
	off   bool
}

// Logger writes one line per call:
//
//	2026-01-02T15:04:05.000 [WARN] runpad: open failed component=documents path=a.py
//
// Calls take a message and then alternating keys and values. Fields added
// with WithField come first, sorted by key.
type Logger struct {
	sink   *sink
	prefix string
	fields map[string]any
}

func NewLogger(cfg LoggerConfig) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		sink:   &sink{level: cfg.Level, out: out},
		prefix: cfg.Prefix,
		fields: map[string]any{},
	}
}

// WithField derives a logger carrying key. Level, output and enablement
// stay shared with l.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

func (l *Logger) WithFields(fields map[string]any) *Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{sink: l.sink, prefix: l.prefix, fields: merged}
}

// WithComponent is WithField("component", name).
func (l *Logger) WithComponent(name string) *Logger {
	return l.WithField("component", name)
}

func (l *Logger) SetLevel(level LogLevel) {
	l.sink.mu.Lock()
	l.sink.level = level
	l.sink.mu.Unlock()
}

func (l *Logger) Level() LogLevel {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return l.sink.level
}

func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	l.sink.out = w
	l.sink.mu.Unlock()
}

func (l *Logger) Disable() { l.setOff(true) }
func (l *Logger) Enable()  { l.setOff(false) }

func (l *Logger) setOff(off bool) {
	l.sink.mu.Lock()
	l.sink.off = off
	l.sink.mu.Unlock()
}

func (l *Logger) Debug(msg string, kv ...any) { l.write(LogLevelDebug, msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.write(LogLevelInfo, msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.write(LogLevelWarn, msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.write(LogLevelError, msg, kv) }

func (l *Logger) write(level LogLevel, msg string, kv []any) {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.off || level < s.level {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] ", time.Now().Format("2006-01-02T15:04:05.000"), level)
	if l.prefix != "" {
		b.WriteString(l.prefix + ": ")
	}
	b.WriteString(msg)

	keys := make([]string, 0, len(l.fields))
	for k := range l.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		appendField(&b, k, l.fields[k])
	}
	for len(kv) >= 2 {
		appendField(&b, fmt.Sprint(kv[0]), kv[1])
		kv = kv[2:]
	}
	if len(kv) == 1 {
		appendField(&b, "!BADKEY", kv[0])
	}
	b.WriteByte('\n')
	_, _ = io.WriteString(s.out, b.String())
}

// appendField quotes values that would not survive splitting on spaces.
func appendField(b *strings.Builder, key string, value any) {
	v := fmt.Sprint(value)
	if strings.ContainsAny(v, " \t\n\"=") {
		v = fmt.Sprintf("%q", v)
	}
	b.WriteString(" " + key + "=" + v)
}

// NullLogger drops everything.
var NullLogger = func() *Logger {
	l := NewLogger(LoggerConfig{Output: io.Discard})
	l.Disable()
	return l
}()

// Logger returns the application logger, or NullLogger before bootstrap.
func (app *Application) Logger() *Logger {
	if app.logger == nil {
		return NullLogger
	}
	return app.logger
}
