// ABOUTME: Structured logging setup shared by the CLI, MCP server and retrieval core
// ABOUTME: Logs go to stderr so stdout stays clean for MCP stdio and command output
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console logger on stderr.
// verbose enables debug output; quiet drops everything below warnings.
func New(verbose, quiet bool) *zap.Logger {
	level := zapcore.InfoLevel
	switch {
	case quiet:
		level = zapcore.WarnLevel
	case verbose:
		level = zapcore.DebugLevel
	}
	return NewWithSink(zapcore.Lock(os.Stderr), level)
}

// NewWithSink builds a console logger writing to sink at the given level
func NewWithSink(sink zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), sink, zap.NewAtomicLevelAt(level))
	return zap.New(core)
}

// OrNop returns l, or a no-op logger when l is nil
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
