package logger

import (
	"os"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/batchline/batchline/pkg/settings"
)

const (
	defaultMaxSize    = 100 // Megabytes
	defaultMaxBackups = 5
	defaultMaxAge     = 30 // Days
)

// New builds a production zap logger from the settings block. Logs always
// go to stdout; when FileLogName is set they are additionally written to a
// size-rotated file.
func New(cfg *settings.Logger) *zap.Logger {
	level := zapcore.InfoLevel
	if cfg != nil && cfg.LogLevel != "" {
		// Fall back to info on an unparsable level rather than failing.
		_ = level.Set(cfg.LogLevel)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	syncers := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if cfg != nil && cfg.FileLogName != "" {
		syncers = append(syncers, zapcore.AddSync(newRotatedFile(cfg)))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(syncers...), level)
	return zap.New(core, zap.AddCaller())
}

func newRotatedFile(cfg *settings.Logger) *lumberjack.Logger {
	maxSize := cfg.MaxSize
	if maxSize == 0 {
		maxSize = defaultMaxSize
	}
	maxBackups := cfg.MaxBackups
	if maxBackups == 0 {
		maxBackups = defaultMaxBackups
	}
	maxAge := cfg.MaxAge
	if maxAge == 0 {
		maxAge = defaultMaxAge
	}

	return &lumberjack.Logger{
		Filename:   cfg.FileLogName,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   cfg.Compress,
	}
}
