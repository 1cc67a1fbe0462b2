package ping

import (
	"errors"
	"fmt"

	"pingback/internal/announce"
	"pingback/pkg/config"
	"pingback/pkg/logger"
)

// URL prints the request URL a pingback for version would use. Nothing is
// sent.
func URL(configPath, version string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.Init(cfg.Pingback.LogLevel)

	p, err := newPinger(cfg, log)
	if err != nil {
		return err
	}

	u, err := p.URL(version)
	if errors.Is(err, announce.ErrDisabled) {
		fmt.Println("Pingback is disabled: no http(s) endpoint configured for this platform.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("building pingback URL: %w", err)
	}

	fmt.Println(u)
	return nil
}
