// Package logger builds zap loggers from settings.Logger.
package logger

import (
	"os"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/huynhanx03/blobvec/pkg/settings"
)

const defaultLevel = zapcore.InfoLevel

// New returns a JSON logger at cfg.LogLevel. Output goes to a rotating file
// when cfg.FileLogName is set, otherwise to stderr.
func New(cfg settings.Logger) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeCaller = zapcore.ShortCallerEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		writer(cfg),
		zap.NewAtomicLevelAt(level(cfg.LogLevel)),
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

func writer(cfg settings.Logger) zapcore.WriteSyncer {
	if cfg.FileLogName == "" {
		return zapcore.Lock(os.Stderr)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.FileLogName,
		MaxSize:    cfg.MaxSize, // megabytes
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge, // days
		Compress:   cfg.Compress,
	})
}

// level parses a level name, falling back to info.
func level(name string) zapcore.Level {
	if name == "" {
		return defaultLevel
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return defaultLevel
	}
	return l
}
