// Package logger 基于 zap 的全局日志
package logger

import (
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	sugar = zap.NewNop().Sugar()
)

// Init 初始化全局日志，development 为 true 时使用彩色控制台输出
func Init(level string, development bool) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("无效的日志级别 %q: %w", level, err)
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("创建日志失败: %w", err)
	}

	Set(l)
	return nil
}

// Set 替换全局日志，主要用于测试
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	sugar = l.Sugar()
}

// L 返回当前全局日志
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// Debugf logs a debug message
func Debugf(format string, args ...any) {
	L().Debugf(format, args...)
}

// Infof logs an info message
func Infof(format string, args ...any) {
	L().Infof(format, args...)
}

// Warnf logs a warning message
func Warnf(format string, args ...any) {
	L().Warnf(format, args...)
}

// Errorf logs an error message
func Errorf(format string, args ...any) {
	L().Errorf(format, args...)
}

// LogPanic logs a panic with stack trace
func LogPanic(r any) {
	L().Errorw("panic recovered", "panic", r, "stack", string(debug.Stack()))
}

// Sync 刷新缓冲的日志
func Sync() {
	_ = L().Sync()
}
