package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qb.log")
	log, err := NewLogger(Options{LogFile: path})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Infow("rendered", "frames", 810)
	log.Debug("hidden at info level")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "rendered") || !strings.Contains(out, "810") {
		t.Errorf("expected the info entry in the log file, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry leaked at info level: %q", out)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	if _, err := NewLogger(Options{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
	log, err := NewLogger(Options{Debug: true, Level: "warn"})
	if err != nil {
		t.Fatal(err)
	}
	if log.Desugar().Core().Enabled(zap.DebugLevel) {
		t.Error("debug should be disabled when level is warn")
	}
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Infof("[*] %d frames", 3)
	if err := log.Sync(); err != nil {
		t.Errorf("nop sync: %v", err)
	}
}
