// Package config provides TOML configuration loading for pingback.
package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the top-level configuration structure.
type Config struct {
	Pingback PingbackConfig `toml:"pingback"`
	Serve    ServeConfig    `toml:"serve"`
}

// PingbackConfig holds the endpoint and local paths used by a pingback.
type PingbackConfig struct {
	OSXURL       string `toml:"osx_url"`
	WindowsURL   string `toml:"windows_url"`
	LinuxURL     string `toml:"linux_url"`
	AnnouncePath string `toml:"announce_path"`
	Fingerprint  string `toml:"fingerprint"`
	Wait         string `toml:"wait"`
	JournalPath  string `toml:"journal_path"`
	LogLevel     string `toml:"log_level"`
}

// ServeConfig holds settings for the development announcement endpoint.
type ServeConfig struct {
	Listen  string `toml:"listen"`
	Message string `toml:"message"`
}

// EndpointURL returns the base URL configured for the platform this binary
// was built for. Linux and every other non-desktop OS share linux_url.
func (p *PingbackConfig) EndpointURL() string {
	return p.endpointFor(runtime.GOOS)
}

func (p *PingbackConfig) endpointFor(goos string) string {
	switch goos {
	case "darwin":
		return p.OSXURL
	case "windows":
		return p.WindowsURL
	default:
		return p.LinuxURL
	}
}

// ParseWait parses how long `pingback ping` waits for the attempt to finish.
func (p *PingbackConfig) ParseWait() (time.Duration, error) {
	if p.Wait == "" {
		return 30 * time.Second, nil
	}
	return time.ParseDuration(p.Wait)
}

// Load reads and parses a TOML config file, applying defaults for unset values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyDefaults(cfg)
	cfg.expandPaths()
	return cfg, nil
}

func (cfg *Config) expandPaths() {
	cfg.Pingback.AnnouncePath = ExpandPath(cfg.Pingback.AnnouncePath)
	cfg.Pingback.JournalPath = ExpandPath(cfg.Pingback.JournalPath)
}

// ExpandPath expands tilde (~) to the user's home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	usr, err := user.Current()
	if err != nil {
		return path
	}
	if path == "~" {
		return usr.HomeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(usr.HomeDir, path[2:])
	}
	return path
}

func applyDefaults(cfg *Config) {

	// Pingback defaults. Endpoint URLs stay empty: no URL means no pingback.
	if cfg.Pingback.AnnouncePath == "" {
		cfg.Pingback.AnnouncePath = "~/.local/share/pingback/announcement"
	}
	if cfg.Pingback.Fingerprint == "" {
		cfg.Pingback.Fingerprint = "native"
	}
	if cfg.Pingback.Wait == "" {
		cfg.Pingback.Wait = "30s"
	}
	if cfg.Pingback.JournalPath == "" {
		cfg.Pingback.JournalPath = "~/.local/share/pingback/journal.db"
	}
	if cfg.Pingback.LogLevel == "" {
		cfg.Pingback.LogLevel = "info"
	}

	// Serve defaults
	if cfg.Serve.Listen == "" {
		cfg.Serve.Listen = "127.0.0.1:8470"
	}
}
