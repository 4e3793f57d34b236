package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManagerAt(dir)
	if err != nil {
		t.Fatalf("NewManagerAt() error = %v", err)
	}

	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ServerURL != "http://localhost:8001" {
		t.Errorf("ServerURL = %q, want the default", cfg.ServerURL)
	}
	if cfg.StateFile != filepath.Join(dir, "state.db") {
		t.Errorf("StateFile = %q", cfg.StateFile)
	}
	if cfg.HistoryFile != filepath.Join(dir, "history.jsonl") {
		t.Errorf("HistoryFile = %q", cfg.HistoryFile)
	}
	if cfg.Italics {
		t.Error("Italics defaults to true, want false")
	}
	if cfg.RequestTimeoutSeconds != 300 {
		t.Errorf("RequestTimeoutSeconds = %d, want 300", cfg.RequestTimeoutSeconds)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManagerAt(dir)
	if err != nil {
		t.Fatalf("NewManagerAt() error = %v", err)
	}

	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg.ServerURL = "https://discovery.example.com"
	cfg.Italics = true
	cfg.RequestTimeoutSeconds = 60

	if err := m.Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	m2, err := NewManagerAt(dir)
	if err != nil {
		t.Fatalf("NewManagerAt() error = %v", err)
	}
	got, err := m2.Load()
	if err != nil {
		t.Fatalf("Load() after Save error = %v", err)
	}

	if got.ServerURL != "https://discovery.example.com" {
		t.Errorf("ServerURL = %q, want the saved value", got.ServerURL)
	}
	if !got.Italics {
		t.Error("Italics = false, want the saved value")
	}
	if got.RequestTimeoutSeconds != 60 {
		t.Errorf("RequestTimeoutSeconds = %d, want 60", got.RequestTimeoutSeconds)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad scheme", `{"server_url": "ftp://host"}`},
		{"not a url", `{"server_url": "::::"}`},
		{"nonpositive timeout", `{"request_timeout_seconds": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			m, err := NewManagerAt(dir)
			if err != nil {
				t.Fatalf("NewManagerAt() error = %v", err)
			}
			if _, err := m.Load(); err == nil {
				t.Error("Load() accepted invalid config")
			}
		})
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("DISCOVERY_SERVER_URL", "http://other-host:9000")

	m, err := NewManagerAt(t.TempDir())
	if err != nil {
		t.Fatalf("NewManagerAt() error = %v", err)
	}
	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerURL != "http://other-host:9000" {
		t.Errorf("ServerURL = %q, want env override", cfg.ServerURL)
	}
}

func TestParseBoolean(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"on", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"off", true, false},
		{"garbage", true, true},
		{"", false, false},
	}

	for _, tt := range tests {
		if got := ParseBoolean(tt.value, tt.def); got != tt.want {
			t.Errorf("ParseBoolean(%q, %v) = %v, want %v", tt.value, tt.def, got, tt.want)
		}
	}
}
