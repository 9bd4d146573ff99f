package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, `
socket_path = "/tmp/test-cmus-socket"
db_path = "/tmp/test-scrob.db"
poll_interval_ms = 500
live_line = true

[lastfm]
api_key = "key"
api_secret = "secret"
session_key = "session"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.SocketPath != "/tmp/test-cmus-socket" {
		t.Errorf("SocketPath = %q", cfg.SocketPath)
	}
	if cfg.DBPath != "/tmp/test-scrob.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.PollInterval() != 500*time.Millisecond {
		t.Errorf("PollInterval() = %v, want 500ms", cfg.PollInterval())
	}
	if !cfg.LiveLine {
		t.Error("LiveLine = false, want true")
	}
	if !cfg.HasLastfm() {
		t.Error("HasLastfm() = false, want true")
	}
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.PollInterval() != 2*time.Second {
		t.Errorf("PollInterval() = %v, want 2s", cfg.PollInterval())
	}
	if cfg.SocketPath == "" {
		t.Error("SocketPath should default to the player socket location")
	}
	if cfg.LiveLine {
		t.Error("LiveLine should default to false")
	}
	if cfg.HasLastfm() {
		t.Error("HasLastfm() should be false without credentials")
	}
}

func TestLoadFrom_InvalidIntervalFallsBack(t *testing.T) {
	path := writeConfig(t, "poll_interval_ms = -100\n")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.PollInterval() != 2*time.Second {
		t.Errorf("PollInterval() = %v, want 2s fallback", cfg.PollInterval())
	}
}

func TestHasLastfm_RequiresAllCredentials(t *testing.T) {
	path := writeConfig(t, `
[lastfm]
api_key = "key"
api_secret = "secret"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.HasLastfm() {
		t.Error("HasLastfm() = true without a session key")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/music.db", filepath.Join(home, "music.db")},
		{"/abs/path", "/abs/path"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
