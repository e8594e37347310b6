package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel is a thin enum for user friendly level configuration decoupled
// from slog.
type LogLevel int

const (
	// LogLevelDebug is the debug logging level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the informational logging level.
	LogLevelInfo
	// LogLevelWarn is the warning logging level.
	LogLevelWarn
	// LogLevelError is the error logging level.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger defines the minimal logging interface the module depends on.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefaultSlogLogger creates a Logger using slog.Default().
func NewDefaultSlogLogger() Logger {
	return NewSlogAdapter(slog.Default())
}

// NoOpLogger discards all log messages. Useful for tests or when logging
// is disabled.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}

// FileConfig enables rotating file output in addition to (or instead of)
// the configured writer.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// LoggerConfig configures construction of an AgentLogger.
type LoggerConfig struct {
	Level     LogLevel
	Format    string // json or text
	Output    io.Writer
	AddSource bool
	Component string
	Agent     string
	RunID     string
	File      *FileConfig
}

// DefaultLoggerConfig returns a baseline JSON info level configuration.
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{Level: LogLevelInfo, Format: "json", Output: os.Stdout}
}

// AgentLogger wraps slog.Logger adding contextual cloning helpers and
// domain convenience methods. It is cheap to copy via the With* methods.
type AgentLogger struct {
	logger    *slog.Logger
	level     LogLevel
	component string
	agent     string
	runID     string
}

// NewLogger builds an AgentLogger from a config (or defaults if nil).
func NewLogger(cfg *LoggerConfig) *AgentLogger {
	if cfg == nil {
		cfg = DefaultLoggerConfig()
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.File != nil {
		rotated := &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		}
		if cfg.Output == nil {
			out = rotated
		} else {
			out = io.MultiWriter(cfg.Output, rotated)
		}
	}

	opts := &slog.HandlerOptions{Level: slogLevel(cfg.Level), AddSource: cfg.AddSource}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	return &AgentLogger{
		logger:    slog.New(handler),
		level:     cfg.Level,
		component: cfg.Component,
		agent:     cfg.Agent,
		runID:     cfg.RunID,
	}
}

// WithComponent sets the logical component (agent, node, proxy, report).
func (l *AgentLogger) WithComponent(c string) *AgentLogger {
	nl := *l
	nl.component = c
	return &nl
}

// WithRun attaches agent and run identifiers.
func (l *AgentLogger) WithRun(agent, runID string) *AgentLogger {
	nl := *l
	nl.agent = agent
	nl.runID = runID
	return &nl
}

func (l *AgentLogger) attrs(extra ...slog.Attr) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(extra)+3)
	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	if l.agent != "" {
		attrs = append(attrs, slog.String("agent", l.agent))
	}
	if l.runID != "" {
		attrs = append(attrs, slog.String("run_id", l.runID))
	}
	return append(attrs, extra...)
}

// Debug logs at debug level.
func (l *AgentLogger) Debug(msg string, args ...any) {
	if l.level <= LogLevelDebug {
		l.logger.With(args...).LogAttrs(context.Background(), slog.LevelDebug, msg, l.attrs()...)
	}
}

// Info logs at info level.
func (l *AgentLogger) Info(msg string, args ...any) {
	if l.level <= LogLevelInfo {
		l.logger.With(args...).LogAttrs(context.Background(), slog.LevelInfo, msg, l.attrs()...)
	}
}

// Warn logs at warn level.
func (l *AgentLogger) Warn(msg string, args ...any) {
	if l.level <= LogLevelWarn {
		l.logger.With(args...).LogAttrs(context.Background(), slog.LevelWarn, msg, l.attrs()...)
	}
}

// Error logs at error level.
func (l *AgentLogger) Error(msg string, args ...any) {
	if l.level <= LogLevelError {
		l.logger.With(args...).LogAttrs(context.Background(), slog.LevelError, msg, l.attrs()...)
	}
}

// LogNodeRun records execution details for one timed node run.
func (l *AgentLogger) LogNodeRun(node string, dur time.Duration, ok bool, err error) {
	attrs := l.attrs(
		slog.String("node", node),
		slog.Duration("duration", dur),
		slog.Bool("ok", ok),
	)
	level := slog.LevelInfo
	msg := "node run completed"
	if !ok {
		level = slog.LevelError
		msg = "node run failed"
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// LogToolTiming records one flat tool timing entry.
func (l *AgentLogger) LogToolTiming(name string, dur time.Duration, ok bool) {
	l.logger.LogAttrs(context.Background(), slog.LevelInfo, "tool call completed",
		l.attrs(slog.String("tool", name), slog.Duration("duration", dur), slog.Bool("ok", ok))...)
}

// StartTimer returns a closure that logs the elapsed duration when invoked.
func (l *AgentLogger) StartTimer(op string) func() {
	start := time.Now()
	return func() { l.Info("operation completed", "operation", op, "duration", time.Since(start)) }
}
