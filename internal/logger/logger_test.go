package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BruksfildServices01/barberpro-booking/internal/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"trace": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestOutputWritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")
	var stdout bytes.Buffer

	w := output(config.LogConfig{File: path, MaxSizeMB: 1}, &stdout)
	log := slog.New(slog.NewJSONHandler(w, nil))
	log.Info("booking created", "appointment_id", 7)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	for _, got := range []string{stdout.String(), string(data)} {
		if !strings.Contains(got, `"appointment_id":7`) {
			t.Fatalf("log line missing field: %q", got)
		}
	}
}
