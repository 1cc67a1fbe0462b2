// Package history implements the pingback history command.
package history

import (
	"fmt"
	"os"
	"strings"
	"time"

	"pingback/internal/journal"
	"pingback/pkg/config"
	"pingback/pkg/logger"
)

// Run lists the most recent pingback attempts.
func Run(configPath string, limit int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.Init(cfg.Pingback.LogLevel)

	if _, err := os.Stat(cfg.Pingback.JournalPath); os.IsNotExist(err) {
		fmt.Println("No pingback attempts recorded yet.")
		return nil
	}

	jr, err := journal.New(cfg.Pingback.JournalPath, log)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer jr.Close()

	entries, err := jr.List(limit)
	if err != nil {
		return fmt.Errorf("listing attempts: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No pingback attempts recorded yet.")
		return nil
	}

	fmt.Printf("\n  Pingback Attempts (%d shown)\n\n", len(entries))
	displayEntryTable(entries)
	return nil
}

func displayEntryTable(entries []journal.Entry) {
	fmt.Printf("  %-20s %-12s %-18s %-6s %-8s %-40s\n",
		"Started", "Version", "Outcome", "HTTP", "Took", "Announcement")
	fmt.Printf("  %s %s %s %s %s %s\n",
		strings.Repeat("─", 20),
		strings.Repeat("─", 12),
		strings.Repeat("─", 18),
		strings.Repeat("─", 6),
		strings.Repeat("─", 8),
		strings.Repeat("─", 40))

	for _, e := range entries {
		status := "-"
		if e.StatusCode != 0 {
			status = fmt.Sprintf("%d", e.StatusCode)
		}

		detail := e.Announcement
		if e.Error != "" {
			detail = e.Error
		}

		fmt.Printf("  %-20s %-12s %-18s %-6s %-8s %-40s\n",
			e.Started.Local().Format("2006-01-02 15:04:05"),
			truncate(e.Version, 12),
			e.Outcome,
			status,
			e.Duration().Round(time.Millisecond).String(),
			truncate(detail, 40),
		)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}
