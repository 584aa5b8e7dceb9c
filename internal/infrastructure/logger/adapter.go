package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"storefront-e2e/internal/application/port/output"
)

var _ output.LoggerPort = (*LoggerAdapter)(nil)

type Config struct {
	Dir     string
	Level   string
	Console bool
}

func DefaultConfig() Config {
	return Config{
		Dir:   "log",
		Level: "info",
	}
}

type LoggerAdapter struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// NewLoggerAdapter writes JSON lines to <dir>/<timestamp>_<run>.log, and
// to stderr as well when cfg.Console is set.
func NewLoggerAdapter(runName string, cfg Config) (*LoggerAdapter, error) {
	if cfg.Dir == "" {
		cfg.Dir = "log"
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	filename := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02_15-04-05"), sanitize(runName))

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Sampling = nil
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.MessageKey = "message"
	zcfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	zcfg.OutputPaths = []string{filepath.Join(cfg.Dir, filename)}
	if cfg.Console {
		zcfg.OutputPaths = append(zcfg.OutputPaths, "stderr")
	}

	base, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return NewFromZap(base), nil
}

func NewFromZap(base *zap.Logger) *LoggerAdapter {
	return &LoggerAdapter{
		base:  base,
		sugar: base.Sugar(),
	}
}

func NewNop() *LoggerAdapter {
	return NewFromZap(zap.NewNop())
}

func (l *LoggerAdapter) Debug(msg string, args ...any) {
	l.sugar.Debugw(msg, args...)
}

func (l *LoggerAdapter) Info(msg string, args ...any) {
	l.sugar.Infow(msg, args...)
}

func (l *LoggerAdapter) Warn(msg string, args ...any) {
	l.sugar.Warnw(msg, args...)
}

func (l *LoggerAdapter) Error(msg string, args ...any) {
	l.sugar.Errorw(msg, args...)
}

func (l *LoggerAdapter) WithField(key string, value any) output.LoggerPort {
	return &LoggerAdapter{
		base:  l.base,
		sugar: l.sugar.With(key, value),
	}
}

func (l *LoggerAdapter) WithFields(fields map[string]any) output.LoggerPort {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &LoggerAdapter{
		base:  l.base,
		sugar: l.sugar.With(args...),
	}
}

func (l *LoggerAdapter) Close() error {
	err := l.base.Sync()
	if err != nil && strings.Contains(err.Error(), "/dev/stderr") {
		return nil
	}
	return err
}

// sanitize makes a run name safe to use in a file name.
func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, s)
	s = strings.Trim(s, "_")
	if s == "" {
		return "run"
	}
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}
