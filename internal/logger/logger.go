package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It discards everything until Init is called.
var Log = zap.NewNop()

// Options selects the level and encoding of the process logger.
type Options struct {
	Level  string
	Format string // "json" or "console"
}

// Init replaces Log with a logger built from opts.
func Init(opts Options) error {
	l, err := build(opts)
	if err != nil {
		return err
	}
	Log = l
	return nil
}

func build(opts Options) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var cfg zap.Config
	if opts.Format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cfg.EncoderConfig.ConsoleSeparator = "  "
		cfg.DisableCaller = true
		cfg.DisableStacktrace = true
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	return cfg.Build()
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func Sync() {
	_ = Log.Sync()
}
