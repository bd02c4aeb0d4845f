// Package log wraps zap with a context-first API. Every call site passes the
// request context so registered hooks can attach ambient fields (trace id,
// operation name) to each record.
package log

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps a zap logger with its dynamic level.
type Logger struct {
	zl    *zap.Logger
	level zap.AtomicLevel
}

var (
	globalMu     sync.RWMutex
	globalLogger = mustNewDefault()
)

func mustNewDefault() *Logger {
	logger, err := New(Config{Level: "info", Format: "console"})
	if err != nil {
		panic(err)
	}

	return logger
}

// New builds a logger from config.
func New(cfg Config) (*Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)

	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}

		level.SetLevel(parsed)
	}

	if cfg.Debug {
		level.SetLevel(zapcore.DebugLevel)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Format == "console" {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	sink := zapcore.AddSync(os.Stdout)
	if cfg.File.Enabled {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		})
	}

	zl := zap.New(zapcore.NewCore(encoder, sink, level), zap.AddCallerSkip(2))
	if cfg.Name != "" {
		zl = zl.Named(cfg.Name)
	}

	return &Logger{zl: zl, level: level}, nil
}

// SetGlobalConfig rebuilds the global logger from config. Called once at
// startup by the fx wiring.
func SetGlobalConfig(cfg Config) {
	logger, err := New(cfg)
	if err != nil {
		Error(context.Background(), "invalid log config, keeping previous logger", Cause(err))
		return
	}

	globalMu.Lock()
	globalLogger = logger
	globalMu.Unlock()
}

// GetGlobalLogger returns the current global logger.
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()

	return globalLogger
}

// Sync flushes buffered records.
func Sync() {
	_ = GetGlobalLogger().zl.Sync()
}

func (l *Logger) log(ctx context.Context, lvl zapcore.Level, msg string, fields ...Field) {
	if !l.level.Enabled(lvl) {
		return
	}

	fields = append(fields, applyHooks(ctx, msg)...)

	switch lvl {
	case zapcore.DebugLevel:
		l.zl.Debug(msg, fields...)
	case zapcore.InfoLevel:
		l.zl.Info(msg, fields...)
	case zapcore.WarnLevel:
		l.zl.Warn(msg, fields...)
	default:
		l.zl.Error(msg, fields...)
	}
}

// Debug logs at debug level with ambient fields from ctx.
func Debug(ctx context.Context, msg string, fields ...Field) {
	GetGlobalLogger().log(ctx, zapcore.DebugLevel, msg, fields...)
}

// Info logs at info level with ambient fields from ctx.
func Info(ctx context.Context, msg string, fields ...Field) {
	GetGlobalLogger().log(ctx, zapcore.InfoLevel, msg, fields...)
}

// Warn logs at warn level with ambient fields from ctx.
func Warn(ctx context.Context, msg string, fields ...Field) {
	GetGlobalLogger().log(ctx, zapcore.WarnLevel, msg, fields...)
}

// Error logs at error level with ambient fields from ctx.
func Error(ctx context.Context, msg string, fields ...Field) {
	GetGlobalLogger().log(ctx, zapcore.ErrorLevel, msg, fields...)
}

// DebugEnabled reports whether debug records would be emitted.
func DebugEnabled(_ context.Context) bool {
	return GetGlobalLogger().level.Enabled(zapcore.DebugLevel)
}
