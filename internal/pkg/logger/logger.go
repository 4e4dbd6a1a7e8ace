package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

var (
	mu           sync.RWMutex
	globalLogger *slog.Logger
	zapLogger    *zap.Logger
)

// New builds a production zap logger writing JSON to stderr.
// stdout is left alone, the stdio transport owns it.
func New(levelStr string) (*zap.Logger, error) {
	level, err := ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// ParseLevel accepts debug, info, warn and error in any case.
func ParseLevel(levelStr string) (zapcore.Level, error) {
	if strings.TrimSpace(levelStr) == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(levelStr)))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", levelStr, err)
	}
	return level, nil
}

// Init builds the logger for levelStr and installs it globally.
func Init(levelStr string) (*zap.Logger, error) {
	l, err := New(levelStr)
	if err != nil {
		return nil, err
	}
	Use(l)
	return l, nil
}

// Use installs l as the package logger and as the slog default.
func Use(l *zap.Logger) {
	sl := slog.New(zapslog.NewHandler(l.Core()))
	mu.Lock()
	zapLogger = l
	globalLogger = sl
	mu.Unlock()
	slog.SetDefault(sl)
}

// Zap returns the installed zap logger, a no-op one before Init.
func Zap() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if zapLogger == nil {
		return zap.NewNop()
	}
	return zapLogger
}

// Sync flushes buffered entries.
func Sync() {
	_ = Zap().Sync()
}

func current() *slog.Logger {
	mu.RLock()
	l := globalLogger
	mu.RUnlock()
	if l != nil {
		return l
	}
	if _, err := Init("info"); err != nil {
		return slog.Default()
	}
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// Debug logs a message at DebugLevel.
func Debug(msg string, args ...any) {
	l := current()
	if l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug(msg, args...)
	}
}

// Info logs a message at InfoLevel.
func Info(msg string, args ...any) {
	l := current()
	if l.Enabled(context.Background(), slog.LevelInfo) {
		l.Info(msg, args...)
	}
}

// Warn logs a message at WarnLevel.
func Warn(msg string, args ...any) {
	l := current()
	if l.Enabled(context.Background(), slog.LevelWarn) {
		l.Warn(msg, args...)
	}
}

// Error logs a message at ErrorLevel.
func Error(msg string, args ...any) {
	l := current()
	if l.Enabled(context.Background(), slog.LevelError) {
		l.Error(msg, args...)
	}
}

// Fatal logs a message at ErrorLevel then exits.
func Fatal(msg string, args ...any) {
	current().Error(msg, args...)
	Sync()
	os.Exit(1)
}
