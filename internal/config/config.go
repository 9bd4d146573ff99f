// Package config loads tool configuration from toml files.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const defaultPollIntervalMs = 2000

type Config struct {
	SocketPath     string `koanf:"socket_path"`      // player control socket
	DBPath         string `koanf:"db_path"`          // empty means the XDG data default
	PollIntervalMs int    `koanf:"poll_interval_ms"` // default 2000
	LiveLine       bool   `koanf:"live_line"`        // overwrite one terminal line while recording

	// Last.fm forwarding (enabled when fully configured)
	Lastfm LastfmConfig `koanf:"lastfm"`
}

// LastfmConfig holds credentials for forwarding scrobs to Last.fm.
type LastfmConfig struct {
	APIKey     string `koanf:"api_key"`
	APISecret  string `koanf:"api_secret"`
	SessionKey string `koanf:"session_key"`
}

// Load reads config files in priority order (last wins):
// ~/.config/scrob/config.toml, then ./config.toml.
func Load() (*Config, error) {
	return load(configPaths())
}

// LoadFrom reads a single explicit config file.
func LoadFrom(path string) (*Config, error) {
	return load([]string{path})
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		PollIntervalMs: defaultPollIntervalMs,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.SocketPath == "" {
		cfg.SocketPath = DefaultSocketPath()
	}
	cfg.SocketPath = expandPath(cfg.SocketPath)
	cfg.DBPath = expandPath(cfg.DBPath)

	if cfg.PollIntervalMs <= 0 {
		cfg.PollIntervalMs = defaultPollIntervalMs
	}

	return cfg, nil
}

func configPaths() []string {
	paths := []string{}

	// 1. ~/.config/scrob/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "scrob", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// DefaultSocketPath is the player's conventional socket location: the
// XDG runtime dir when available, the cmus config dir otherwise.
func DefaultSocketPath() string {
	if xdg.RuntimeDir != "" {
		return filepath.Join(xdg.RuntimeDir, "cmus-socket")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "cmus", "socket")
	}
	return "cmus-socket"
}

// PollInterval returns the poll period as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// HasLastfm returns true if Last.fm forwarding is fully configured.
func (c *Config) HasLastfm() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != "" && c.Lastfm.SessionKey != ""
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
