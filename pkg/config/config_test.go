package config

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")

	content := `
[pingback]
  osx_url       = "http://example.org/pingback/osx/"
  windows_url   = "http://example.org/pingback/windows/"
  linux_url     = "http://example.org/pingback/linux/"
  announce_path = "/tmp/announcement"
  fingerprint   = "hostinfo"
  wait          = "5s"
  journal_path  = "/tmp/journal.db"
  log_level     = "debug"

[serve]
  listen  = "127.0.0.1:9000"
  message = "hello"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Pingback.LinuxURL != "http://example.org/pingback/linux/" {
		t.Errorf("Pingback.LinuxURL: got %s", cfg.Pingback.LinuxURL)
	}
	if cfg.Pingback.AnnouncePath != "/tmp/announcement" {
		t.Errorf("Pingback.AnnouncePath: got %s, want /tmp/announcement", cfg.Pingback.AnnouncePath)
	}
	if cfg.Pingback.Fingerprint != "hostinfo" {
		t.Errorf("Pingback.Fingerprint: got %s, want hostinfo", cfg.Pingback.Fingerprint)
	}
	if cfg.Pingback.LogLevel != "debug" {
		t.Errorf("Pingback.LogLevel: got %s, want debug", cfg.Pingback.LogLevel)
	}
	if cfg.Serve.Listen != "127.0.0.1:9000" {
		t.Errorf("Serve.Listen: got %s, want 127.0.0.1:9000", cfg.Serve.Listen)
	}
	if cfg.Serve.Message != "hello" {
		t.Errorf("Serve.Message: got %s, want hello", cfg.Serve.Message)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")

	// Minimal config: defaults fill the rest
	content := `
[pingback]
  linux_url = "http://example.org/"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Pingback.Fingerprint != "native" {
		t.Errorf("default Fingerprint: got %s, want native", cfg.Pingback.Fingerprint)
	}
	if cfg.Pingback.Wait != "30s" {
		t.Errorf("default Wait: got %s, want 30s", cfg.Pingback.Wait)
	}
	if cfg.Pingback.LogLevel != "info" {
		t.Errorf("default LogLevel: got %s, want info", cfg.Pingback.LogLevel)
	}
	if cfg.Serve.Listen != "127.0.0.1:8470" {
		t.Errorf("default Listen: got %s, want 127.0.0.1:8470", cfg.Serve.Listen)
	}
	if !strings.HasSuffix(cfg.Pingback.AnnouncePath, "announcement") {
		t.Errorf("default AnnouncePath: got %s", cfg.Pingback.AnnouncePath)
	}
	if cfg.Pingback.OSXURL != "" || cfg.Pingback.WindowsURL != "" {
		t.Error("expected unset endpoint URLs to stay empty")
	}
}

func TestLoad_NonexistentFile(t *testing.T) {
	_, err := Load("/nonexistent/config.toml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(cfgPath, []byte("invalid [[[ toml"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(cfgPath)
	if err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestEndpointFor(t *testing.T) {
	p := &PingbackConfig{
		OSXURL:     "osx",
		WindowsURL: "windows",
		LinuxURL:   "linux",
	}

	tests := map[string]string{
		"darwin":  "osx",
		"windows": "windows",
		"linux":   "linux",
		"freebsd": "linux",
		"plan9":   "linux",
	}
	for goos, want := range tests {
		if got := p.endpointFor(goos); got != want {
			t.Errorf("endpointFor(%s): got %s, want %s", goos, got, want)
		}
	}
}

func TestParseWait(t *testing.T) {
	cfg := &PingbackConfig{Wait: "10s"}
	d, err := cfg.ParseWait()
	if err != nil {
		t.Fatalf("parse wait: %v", err)
	}
	if d.Seconds() != 10 {
		t.Errorf("Wait: got %v, want 10s", d)
	}
}

func TestParseWait_Default(t *testing.T) {
	cfg := &PingbackConfig{}
	d, err := cfg.ParseWait()
	if err != nil {
		t.Fatalf("parse wait: %v", err)
	}
	if d.Seconds() != 30 {
		t.Errorf("Default wait: got %v, want 30s", d)
	}
}

func TestExpandPath(t *testing.T) {
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath(/abs/path): got %s", got)
	}

	usr, err := user.Current()
	if err != nil {
		t.Skipf("no current user: %v", err)
	}
	if got, want := ExpandPath("~/x"), filepath.Join(usr.HomeDir, "x"); got != want {
		t.Errorf("ExpandPath(~/x): got %s, want %s", got, want)
	}
}
