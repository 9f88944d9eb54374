package logger

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Default rotation settings for the file sink.
const (
	defaultMaxSizeMB   = 10
	defaultMaxBackups  = 5
	defaultMaxAgeDays  = 30
	defaultCompression = true
)

type options struct {
	writer io.Writer
	file   *lumberjack.Logger
	format string
	level  slog.Level
}

func defaultOptions() *options {
	return &options{
		writer: os.Stdout,
		format: FormatText,
		level:  slog.LevelInfo,
	}
}

// Option configures a logger built by New or Init.
type Option func(*options)

// WithWriter replaces stdout as the primary output.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithFormat selects the handler: "text" (default) or "json".
func WithFormat(format string) Option {
	return func(o *options) {
		if format != "" {
			o.format = format
		}
	}
}

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// FileConfig describes the rotating log file.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// WithFile tees output into a size-rotated file. An empty path is a no-op.
func WithFile(fc FileConfig) Option {
	return func(o *options) {
		if fc.Path == "" {
			return
		}
		lj := &lumberjack.Logger{
			Filename:   fc.Path,
			MaxSize:    defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
			MaxAge:     defaultMaxAgeDays,
			Compress:   defaultCompression,
		}
		if fc.MaxSizeMB > 0 {
			lj.MaxSize = fc.MaxSizeMB
		}
		if fc.MaxBackups > 0 {
			lj.MaxBackups = fc.MaxBackups
		}
		if fc.MaxAgeDays > 0 {
			lj.MaxAge = fc.MaxAgeDays
		}
		o.file = lj
	}
}
