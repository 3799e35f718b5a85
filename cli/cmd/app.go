// Package cmd defines the contract-intelligence CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ReddyVikranth/Contract-Intelligence-Parser/client"
	"github.com/ReddyVikranth/Contract-Intelligence-Parser/config"
	"github.com/ReddyVikranth/Contract-Intelligence-Parser/pkg/logger"
)

// ConfigFlag selects the yaml config file. When the default path does
// not exist, built-in defaults plus CIP_* environment overrides apply.
func ConfigFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Usage:   "Path to config file",
		Value:   "config.yaml",
		EnvVars: []string{"CIP_CONFIG"},
	}
}

// setup loads configuration and initializes logging for a command.
func setup(c *cli.Context) (*config.Config, error) {
	path := c.String("config")

	var cfg *config.Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg = config.Default()
	} else {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		cfg = loaded
	}

	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	return cfg, nil
}

// newClient builds the transport client for a command.
func newClient(c *cli.Context) (*client.Client, *config.Config, error) {
	cfg, err := setup(c)
	if err != nil {
		return nil, nil, err
	}
	return client.New(&cfg.API), cfg, nil
}
