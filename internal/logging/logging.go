// SPDX-License-Identifier: EPL-2.0

// Package logging builds the run logger: a human readable console core on
// stderr, teed with a rotated JSON file core in debug mode.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Debug lowers the level to DEBUG and enables the file core.
	Debug   bool
	// File is the debug log path. Ignored unless Debug is set.
	File    string
	// Console receives the console core. Defaults to os.Stderr.
	Console io.Writer

	// Rotation limits for the debug file, in megabytes, files and days.
	MaxSize    int
	MaxBackups int
	MaxAge     int
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// New returns a logger and a closer that flushes it and releases the
// debug file. The closer must be called once the run is over.
func New(opts Options) (*zap.Logger, func() error, error) {
	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.Lock(zapcore.AddSync(console)),
		level,
	)

	core := consoleCore
	var file *lumberjack.Logger

	if opts.Debug && opts.File != "" {
		if dir := filepath.Dir(opts.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create log directory: %w", err)
			}
		}

		file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    valueOr(opts.MaxSize, 10),
			MaxBackups: valueOr(opts.MaxBackups, 3),
			MaxAge:     valueOr(opts.MaxAge, 28),
		}

		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig()),
			zapcore.AddSync(file),
			zapcore.DebugLevel,
		)
		core = zapcore.NewTee(consoleCore, fileCore)
	}

	logger := zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))

	closer := func() error {
		// Syncing a terminal fails on some platforms; only the file matters.
		_ = logger.Sync()
		if file != nil {
			if err := file.Close(); err != nil {
				return fmt.Errorf("close debug log: %w", err)
			}
		}
		return nil
	}

	return logger, closer, nil
}

func valueOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
