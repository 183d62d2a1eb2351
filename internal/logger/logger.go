package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/BruksfildServices01/barberpro-booking/internal/config"
)

// New monta o logger JSON. Com LOG_FILE definido, grava também num arquivo
// rotacionado.
func New(cfg config.LogConfig) *slog.Logger {
	return slog.New(slog.NewJSONHandler(output(cfg, os.Stdout), &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	})).With(slog.String("service", "barberpro-booking"))
}

func output(cfg config.LogConfig, stdout io.Writer) io.Writer {
	if cfg.File == "" {
		return stdout
	}
	return io.MultiWriter(stdout, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.CompressFiles,
	})
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
