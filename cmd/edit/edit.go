// Package edit implements the pingback edit command.
package edit

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const defaultConfigTemplate = `[pingback]
  # Base URLs per platform; the escaped version is appended verbatim.
  # Leave the URL for a platform empty to disable pingbacks there.
  osx_url       = ""
  windows_url   = ""
  linux_url     = ""
  announce_path = "~/.local/share/pingback/announcement"
  fingerprint   = "native"
  wait          = "30s"
  journal_path  = "~/.local/share/pingback/journal.db"
  log_level     = "info"

[serve]
  listen  = "127.0.0.1:8470"
  message = ""
`

// Run opens the configuration file in the system editor.
// If the file does not exist, it creates it with default values.
func Run(path string) error {
	if err := ensureConfig(path); err != nil {
		return err
	}

	editor, err := findEditor()
	if err != nil {
		return err
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

func ensureConfig(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("Creating new config file at %s...\n", path)
		if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0644); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}
	return nil
}

func findEditor() (string, error) {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor, nil
	}
	for _, e := range []string{"vi", "nano", "vim"} {
		if _, err := exec.LookPath(e); err == nil {
			return e, nil
		}
	}
	return "", fmt.Errorf("no editor found ($EDITOR environment variable not set, and vi/nano/vim not in PATH)")
}
