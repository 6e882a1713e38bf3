// Copyright (C) 2025 The jcode Authors. All Rights Reserved.

// Package log defines the leveled logging capability consumed by the rest of
// the module. Components depend only on the Logger interface; the default
// implementation borrows from zap, and Discard silences a component
// entirely, which is what library consumers usually want.
package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log level constants accepted by SetLevel and New.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Logger is the logging capability injected into detectors and session
// managers. Any logger with printf-style leveled methods satisfies it,
// including *zap.SugaredLogger.
type Logger interface {
	// Debugf logs to DEBUG log. Arguments are handled in the manner of fmt.Printf.
	Debugf(format string, args ...any)
	// Infof logs to INFO log. Arguments are handled in the manner of fmt.Printf.
	Infof(format string, args ...any)
	// Warnf logs to WARNING log. Arguments are handled in the manner of fmt.Printf.
	Warnf(format string, args ...any)
	// Errorf logs to ERROR log. Arguments are handled in the manner of fmt.Printf.
	Errorf(format string, args ...any)
}

var zapLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "ts",
	LevelKey:       "lvl",
	NameKey:        "name",
	MessageKey:     "message",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.RFC3339TimeEncoder,
	EncodeDuration: zapcore.SecondsDurationEncoder,
}

// Default is the logger used when no explicit Logger is injected. It writes
// to stdout through zap. Replace it with whatever logger you like, as long
// as it implements the Logger interface.
var Default Logger = zap.New(zapcore.NewCore(
	zapcore.NewConsoleEncoder(encoderConfig),
	zapcore.AddSync(os.Stdout),
	zapLevel,
)).Sugar()

// New constructs an independent zap-backed Logger writing to stdout at the
// given level. Unlike Default, the returned logger's level is fixed and not
// affected by SetLevel.
func New(level string) Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		lvl,
	)).Sugar()
}

// Discard is a Logger that drops everything written to it.
var Discard Logger = discard{}

type discard struct{}

func (discard) Debugf(string, ...any) {}
func (discard) Infof(string, ...any)  {}
func (discard) Warnf(string, ...any)  {}
func (discard) Errorf(string, ...any) {}

// SetLevel sets the level of the Default logger. Valid levels are "debug",
// "info", "warn", and "error"; anything else resets to info.
func SetLevel(level string) {
	switch level {
	case LevelDebug:
		zapLevel.SetLevel(zapcore.DebugLevel)
	case LevelInfo:
		zapLevel.SetLevel(zapcore.InfoLevel)
	case LevelWarn:
		zapLevel.SetLevel(zapcore.WarnLevel)
	case LevelError:
		zapLevel.SetLevel(zapcore.ErrorLevel)
	default:
		zapLevel.SetLevel(zapcore.InfoLevel)
	}
}

// Debugf logs to the Default logger at DEBUG level.
func Debugf(format string, args ...any) { Default.Debugf(format, args...) }

// Infof logs to the Default logger at INFO level.
func Infof(format string, args ...any) { Default.Infof(format, args...) }

// Warnf logs to the Default logger at WARNING level.
func Warnf(format string, args ...any) { Default.Warnf(format, args...) }

// Errorf logs to the Default logger at ERROR level.
func Errorf(format string, args ...any) { Default.Errorf(format, args...) }
