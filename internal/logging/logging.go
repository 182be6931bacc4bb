// Package logging builds the slog logger used by the CLI and the preview
// server.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	Level    string
	Format   string
	File     string
	MaxSize  int
	MaxFiles int
	// Writer receives logs when File is empty. Defaults to stderr.
	Writer io.Writer
}

// ParseLevel maps a config level to slog. Unknown values mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger and the closer of its output. File output is rotated
// by lumberjack.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	var (
		out    io.Writer = opts.Writer
		closer io.Closer = nopCloser{}
	)
	if out == nil {
		out = os.Stderr
	}

	if file := strings.TrimSpace(opts.File); file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, nil, err
		}
		maxSize := opts.MaxSize
		if maxSize <= 0 {
			maxSize = 10
		}
		maxFiles := opts.MaxFiles
		if maxFiles <= 0 {
			maxFiles = 5
		}
		rotating := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxSize,
			MaxBackups: maxFiles,
			Compress:   true,
		}
		out = rotating
		closer = rotating
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       ParseLevel(opts.Level),
		ReplaceAttr: replaceAttr,
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}
	return slog.New(handler), closer, nil
}

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		a.Key = "timestamp"
	case slog.LevelKey:
		level := strings.ToLower(a.Value.String())
		if level == "warn" {
			level = "warning"
		}
		a.Value = slog.StringValue(level)
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
