package edit

import (
	"os"
	"path/filepath"
	"testing"

	"pingback/pkg/config"
)

func TestEnsureConfig_WritesLoadableDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if err := ensureConfig(path); err != nil {
		t.Fatalf("ensureConfig failed: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}
	if cfg.Pingback.Fingerprint != "native" {
		t.Errorf("Fingerprint: got %s, want native", cfg.Pingback.Fingerprint)
	}
	if cfg.Pingback.EndpointURL() != "" {
		t.Errorf("expected pingback disabled by default, got %s", cfg.Pingback.EndpointURL())
	}
}

func TestEnsureConfig_KeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("# mine\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := ensureConfig(path); err != nil {
		t.Fatalf("ensureConfig failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "# mine\n" {
		t.Errorf("existing config overwritten: %q", data)
	}
}

func TestFindEditor_UsesEnv(t *testing.T) {
	t.Setenv("EDITOR", "my-editor")

	editor, err := findEditor()
	if err != nil {
		t.Fatalf("findEditor failed: %v", err)
	}
	if editor != "my-editor" {
		t.Errorf("editor: got %s, want my-editor", editor)
	}
}
