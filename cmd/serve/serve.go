// Package serve implements the pingback serve command, a local stand-in
// for the announcement service.
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pingback/internal/announceserver"
	"pingback/pkg/config"
	"pingback/pkg/logger"
)

// Run serves announcements until SIGINT or SIGTERM.
func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.Init(cfg.Pingback.LogLevel)

	message := cfg.Serve.Message
	srv := announceserver.New(func() string { return message }, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(ctx, cfg.Serve.Listen)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("announcement server error: %w", err)
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
		cancel()
		return <-errCh
	}
}
