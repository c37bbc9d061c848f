// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package samples

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger returns a logger
// that writes into a rotated log file.
// If name is empty,
// the logger discards all records.
func newLogger(name string) (*slog.Logger, func() error, error) {
	if name == "" {
		l := slog.New(slog.NewTextHandler(io.Discard, nil))
		return l, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return nil, nil, err
	}
	lj := &lumberjack.Logger{
		Filename:   name,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	}
	h := slog.NewTextHandler(lj, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return slog.New(h), lj.Close, nil
}
