package cmd

import (
	"github.com/go-drift/postboard/cmd/postboard/internal/config"
	"github.com/go-drift/postboard/pkg/log"
)

// resolveConfig resolves settings from dir, or from the project root when
// dir is empty, and applies the log level.
func resolveConfig(dir string) (*config.Resolved, error) {
	if dir == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			return nil, err
		}
		dir = root
	}

	cfg, err := config.Resolve(dir, nil)
	if err != nil {
		return nil, err
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	if err := log.SetLevelName(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.ConfigFile != "" {
		log.D.F("loaded %s", cfg.ConfigFile)
	}
	return cfg, nil
}
