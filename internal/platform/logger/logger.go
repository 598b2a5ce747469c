// Package logger builds the process logger: structured text to stdout, with
// an optional mirror to a log file the way operators have historically read
// this tool's output.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// New returns a slog.Logger at the given level. When file is non-empty the
// output is mirrored there (parent directories are created, the file is
// truncated per run). The returned closer releases the file handle and is a
// no-op otherwise.
func New(level, file string) (*slog.Logger, func() error, error) {
	var out io.Writer = os.Stdout
	closer := func() error { return nil }

	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.Create(file)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, f)
		closer = f.Close
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler), closer, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
