package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
)

const (
	logDir      = "logs"
	logFileName = "argon-hud.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging routes slog and the standard logger to logs/argon-hud.log when debug is set
// Otherwise all log output is discarded so nothing reaches the terminal under tcell
// The file is rotated aside with a timestamp once it exceeds maxLogSize
func setupLogging(debug bool) *os.File {
	if !debug {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("argon-hud-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	slog.SetDefault(slog.New(tint.NewHandler(f, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	})))
	// slog.SetDefault redirects the standard logger; point it back at the file directly
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}
