package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	logger, err := New(Config{Level: "debug", Path: path})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("page loaded", zap.String("url", "https://example.com"))
	logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Reading log file failed: %v", err)
	}
	if !strings.Contains(string(data), "page loaded") {
		t.Errorf("Expected the log line in the file, got %q", string(data))
	}
	if !strings.Contains(string(data), "https://example.com") {
		t.Error("Expected the field value in the file")
	}
}

func TestNewEmptyPathIsNop(t *testing.T) {
	logger, err := New(Config{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("goes nowhere")
}

func TestNewBadLevel(t *testing.T) {
	if _, err := New(Config{Level: "shouting", Path: filepath.Join(t.TempDir(), "x.log")}); err == nil {
		t.Error("Expected an error for an unknown level")
	}
}

func TestNewFileFallsBack(t *testing.T) {
	logger := NewFile(filepath.Join(t.TempDir(), "missing-dir", "x", "y", "z.log"))
	if logger == nil {
		t.Fatal("Expected a logger even when the path is unusable")
	}
	logger.Info("safe to call")
}
