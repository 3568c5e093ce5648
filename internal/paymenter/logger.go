package paymenter

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zapio"
)

// Logger wraps zap so every console line is mirrored verbatim into the
// append-only log file.
type Logger struct {
	*zap.SugaredLogger
	base *zap.Logger
}

func NewLogger(cfg Config) (*Logger, error) {
	outputs := []string{"stdout"}
	if cfg.LogFile != "" {
		if err := ensureDir(filepath.Dir(cfg.LogFile), 0o750); err == nil {
			outputs = append(outputs, cfg.LogFile)
		}
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.InfoLevel),
		Encoding:         "console",
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			MessageKey:     "message",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
		},
	}

	base, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: base.Sugar(), base: base}, nil
}

// NewFileLogger logs to the log file only. The TUI uses it so pipeline output
// does not tear the alternate screen; the progress view renders step results
// itself.
func NewFileLogger(cfg Config) (*Logger, error) {
	if cfg.LogFile == "" {
		return NewTestLogger(), nil
	}
	if err := ensureDir(filepath.Dir(cfg.LogFile), 0o750); err != nil {
		return NewTestLogger(), nil
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.InfoLevel),
		Encoding:         "console",
		OutputPaths:      []string{cfg.LogFile},
		ErrorOutputPaths: []string{cfg.LogFile},
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			MessageKey:     "message",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
		},
	}
	base, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: base.Sugar(), base: base}, nil
}

// NewTestLogger writes nowhere; used from tests and as a fallback when the
// log file cannot be opened.
func NewTestLogger() *Logger {
	base := zap.NewNop()
	return &Logger{SugaredLogger: base.Sugar(), base: base}
}

// Writer returns a sink that routes child-process output through the logger,
// so command output lands on the console and in the log file alike.
func (l *Logger) Writer() io.Writer {
	if l.base == nil {
		return os.Stdout
	}
	return &zapio.Writer{Log: l.base, Level: zapcore.InfoLevel}
}

func (l *Logger) Sync() error {
	return l.SugaredLogger.Sync()
}
