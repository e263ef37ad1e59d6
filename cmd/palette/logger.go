package main

import (
	"context"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/agentstation/palette"
)

// zapLogger adapts a zap logger to palette.Logger.
type zapLogger struct {
	log *zap.SugaredLogger
}

var _ palette.Logger = (*zapLogger)(nil)

// newLogger logs to w in console format. Debug output is enabled by
// verbose; otherwise only warnings and errors are shown.
func newLogger(w io.Writer, verbose bool) *zapLogger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level)
	return &zapLogger{log: zap.New(core).Sugar()}
}

func (l *zapLogger) Debug(_ context.Context, msg string, keysAndValues ...any) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l *zapLogger) Info(_ context.Context, msg string, keysAndValues ...any) {
	l.log.Infow(msg, keysAndValues...)
}

func (l *zapLogger) Error(_ context.Context, msg string, keysAndValues ...any) {
	l.log.Errorw(msg, keysAndValues...)
}

// Sync flushes buffered entries.
func (l *zapLogger) Sync() {
	_ = l.log.Sync()
}
