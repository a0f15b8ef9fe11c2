package storage

import (
	"runtime"
	"testing"

	"github.com/caarlos0/env/v11"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Theme != "default" {
		t.Errorf("Expected theme 'default', got %q", cfg.Theme)
	}
	if cfg.SearchEngine != "www.google.com" {
		t.Errorf("Expected the default search engine, got %q", cfg.SearchEngine)
	}
	if cfg.Assist.APIKey != "" {
		t.Error("Expected no API key by default")
	}
}

func TestAssistEnvOverrides(t *testing.T) {
	t.Setenv("AI_API_KEY", "from-env")
	t.Setenv("AI_API_ENDPOINT", "https://proxy.test/v1/chat/completions")

	cfg := DefaultConfig()
	cfg.Assist.Model = "from-file"

	if err := env.Parse(&cfg.Assist); err != nil {
		t.Fatalf("Parsing environment failed: %v", err)
	}

	if cfg.Assist.APIKey != "from-env" {
		t.Errorf("Expected the env API key, got %q", cfg.Assist.APIKey)
	}
	if cfg.Assist.Endpoint != "https://proxy.test/v1/chat/completions" {
		t.Errorf("Expected the env endpoint, got %q", cfg.Assist.Endpoint)
	}
	// AI_MODEL is unset, so the file value stays.
	if cfg.Assist.Model != "from-file" {
		t.Errorf("Expected the file model to survive, got %q", cfg.Assist.Model)
	}
}

func TestLoadConfigRoundTrip(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("config location is fixed on this OS")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// First load writes the defaults.
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Theme != "default" {
		t.Errorf("Expected default theme, got %q", cfg.Theme)
	}

	cfg.Theme = "nord"
	cfg.Homepage = "https://example.com"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Theme != "nord" {
		t.Errorf("Expected theme 'nord', got %q", loaded.Theme)
	}
	if loaded.Homepage != "https://example.com" {
		t.Errorf("Expected the saved homepage, got %q", loaded.Homepage)
	}
}
