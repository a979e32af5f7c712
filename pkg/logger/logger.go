package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var l = zap.NewNop()

// Init 初始化全局 logger；level 非法时回退到 info
func Init(level string) error {
	lv, err := zapcore.ParseLevel(level)
	if err != nil {
		lv = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lv)
	built, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	l = built
	return nil
}

// L returns the underlying zap logger.
func L() *zap.Logger { return l }

func Debug(msg string, fields ...zap.Field) { l.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { l.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { l.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { l.Error(msg, fields...) }

// Sync flushes buffered entries; safe to call on shutdown.
func Sync() { _ = l.Sync() }
