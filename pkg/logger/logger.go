// Package logger builds the zap loggers used across the service.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how much is logged.
type Options struct {
	Level      string // debug, info, warn, error.
	File       string // Empty writes to stderr.
	MaxSizeMB  int    // Rotation threshold for File.
	MaxBackups int    // Rotated files kept.
	MaxAgeDays int    // Days rotated files are kept.
}

// New returns an info level JSON logger on stderr tagged with service.
func New(service string) *zap.SugaredLogger {
	log, err := NewWithOptions(service, &Options{Level: "info"})
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return log
}

// NewWithOptions builds a logger from opts. When opts.File is set output goes
// to a size-rotated file instead of stderr.
func NewWithOptions(service string, opts *Options) (*zap.SugaredLogger, error) {
	if opts == nil {
		opts = &Options{}
	}

	level := zapcore.InfoLevel
	if strings.TrimSpace(opts.Level) != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var sink zapcore.WriteSyncer
	if opts.File != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		})
	} else {
		sink = zapcore.Lock(os.Stderr)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), sink, level)
	return zap.New(core, zap.AddCaller()).Named(service).Sugar(), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
