// Package show implements the pingback show command.
package show

import (
	"fmt"
	"os"

	"pingback/pkg/config"
)

// Run prints the cached announcement.
func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	data, err := os.ReadFile(cfg.Pingback.AnnouncePath)
	if os.IsNotExist(err) {
		fmt.Println("No announcement cached yet. Run 'pingback ping' first.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading announcement %s: %w", cfg.Pingback.AnnouncePath, err)
	}

	if len(data) == 0 {
		fmt.Println("No announcement.")
		return nil
	}

	fmt.Println(string(data))
	return nil
}
