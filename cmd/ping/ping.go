// Package ping implements the pingback ping and url commands.
package ping

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"pingback/internal/announce"
	"pingback/internal/fingerprint"
	"pingback/internal/journal"
	"pingback/pkg/config"
	"pingback/pkg/logger"
)

// journalKeep is how many attempts survive the prune after each ping.
const journalKeep = 100

// Run sends one pingback for version and waits up to the configured wait
// for it to finish, so the process does not exit under the worker.
func Run(configPath, version string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.Init(cfg.Pingback.LogLevel)

	wait, err := cfg.Pingback.ParseWait()
	if err != nil {
		return fmt.Errorf("parsing wait: %w", err)
	}

	// Ensure announcement directory exists
	announceDir := filepath.Dir(cfg.Pingback.AnnouncePath)
	if err := os.MkdirAll(announceDir, 0755); err != nil {
		return fmt.Errorf("creating announcement directory %s: %w", announceDir, err)
	}

	// Ensure journal directory exists
	journalDir := filepath.Dir(cfg.Pingback.JournalPath)
	if err := os.MkdirAll(journalDir, 0700); err != nil {
		return fmt.Errorf("creating journal directory %s: %w", journalDir, err)
	}

	jr, err := journal.New(cfg.Pingback.JournalPath, log)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer jr.Close()

	p, err := newPinger(cfg, log)
	if err != nil {
		return err
	}

	done := make(chan announce.Result, 1)
	p.Recorder = announce.RecorderFunc(func(res announce.Result) {
		jr.Record(res)
		done <- res
	})

	log.Debug().
		Str("version", version).
		Str("announce_path", cfg.Pingback.AnnouncePath).
		Msg("Starting pingback")

	p.Pingback(version, cfg.Pingback.AnnouncePath)

	select {
	case res := <-done:
		log.Info().
			Str("outcome", string(res.Outcome)).
			Dur("took", res.Finished.Sub(res.Started)).
			Msg("Pingback finished")
	case <-time.After(wait):
		log.Warn().Dur("wait", wait).Msg("Pingback still running, exiting without it")
		return nil
	}

	if _, err := jr.Prune(journalKeep); err != nil {
		log.Warn().Err(err).Msg("Failed to prune journal")
	}
	return nil
}

func newPinger(cfg *config.Config, log zerolog.Logger) (*announce.Pinger, error) {
	fp, err := fingerprint.New(cfg.Pingback.Fingerprint)
	if err != nil {
		return nil, fmt.Errorf("selecting fingerprint: %w", err)
	}

	return &announce.Pinger{
		Endpoint:      cfg.Pingback.EndpointURL(),
		Fingerprinter: fp,
		Log:           log,
	}, nil
}
