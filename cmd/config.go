package cmd

import (
	"strings"

	"github.com/olimci/hinagata/pkg/config"
	"github.com/urfave/cli/v3"
)

// loadConfig reads the config named by --config, or the one in the user
// config directory, and applies flag overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	path := strings.TrimSpace(cmd.String("config"))
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if level := strings.TrimSpace(cmd.String("log-level")); level != "" {
		cfg.Defaults.LogLevel = level
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
