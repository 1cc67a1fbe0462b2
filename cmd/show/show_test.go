package show

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T) (cfgPath, announcePath string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath = filepath.Join(dir, "config.toml")
	announcePath = filepath.Join(dir, "announcement")

	content := fmt.Sprintf("[pingback]\n  announce_path = %q\n", announcePath)
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath, announcePath
}

func TestRun_NoAnnouncementYet(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	if err := Run(cfgPath); err != nil {
		t.Errorf("Run failed: %v", err)
	}
}

func TestRun_CachedAnnouncement(t *testing.T) {
	cfgPath, announcePath := writeConfig(t)
	if err := os.WriteFile(announcePath, []byte("Version 9 is out"), 0644); err != nil {
		t.Fatalf("write announcement: %v", err)
	}

	if err := Run(cfgPath); err != nil {
		t.Errorf("Run failed: %v", err)
	}
}

func TestRun_MissingConfig(t *testing.T) {
	if err := Run(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing config")
	}
}
