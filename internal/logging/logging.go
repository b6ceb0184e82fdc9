// Package logging builds the zap logger pantry hands to its client and
// dashboard.
//
// With a file configured, entries are written as JSON lines (keys ts, level,
// msg) so the dashboard's Logs view can tail and parse them. Without one, a
// console encoder writes to stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the level and destination of the logger.
type Options struct {
	Level       string
	File        string
	Development bool
}

// Field names of the JSON file encoding.
const (
	TimeKey    = "ts"
	LevelKey   = "level"
	MessageKey = "msg"
	NameKey    = "logger"
)

// TimeLayout is the timestamp layout written to the log file.
const TimeLayout = "2006-01-02T15:04:05.000Z0700"

// New returns a logger and a close function that flushes and releases the
// log file. An empty level means info.
func New(opts Options) (*zap.Logger, func(), error) {
	level := zapcore.InfoLevel
	if s := strings.TrimSpace(opts.Level); s != "" {
		parsed, err := zapcore.ParseLevel(s)
		if err != nil {
			return nil, nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	var (
		core    zapcore.Core
		closeFn = func() {}
	)
	if path := strings.TrimSpace(opts.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		core = zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig()), zapcore.AddSync(file), level)
		closeFn = func() { _ = file.Close() }
	} else {
		cfg := zap.NewProductionEncoderConfig()
		if opts.Development {
			cfg = zap.NewDevelopmentEncoderConfig()
		}
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout(TimeLayout)
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		core = zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(os.Stderr), level)
	}

	zopts := []zap.Option{zap.ErrorOutput(zapcore.Lock(os.Stderr))}
	if opts.Development {
		zopts = append(zopts, zap.Development(), zap.AddCaller())
	}
	logger := zap.New(core, zopts...)
	return logger, func() {
		_ = logger.Sync()
		closeFn()
	}, nil
}

func fileEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = TimeKey
	cfg.LevelKey = LevelKey
	cfg.MessageKey = MessageKey
	cfg.NameKey = NameKey
	cfg.CallerKey = zapcore.OmitKey
	cfg.StacktraceKey = zapcore.OmitKey
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout(TimeLayout)
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	return cfg
}
