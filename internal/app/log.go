package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"fileview/internal/config"
)

// OpenLog opens the log file named by cfg for appending and returns a logger
// writing to it. The terminal belongs to the UI, so logs never go to stdout
// or stderr. The returned closer closes the file.
func OpenLog(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}
