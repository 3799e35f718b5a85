package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API     APIConfig     `yaml:"api"`
	Poll    PollConfig    `yaml:"poll"`
	Log     LogConfig     `yaml:"log"`
	Archive ArchiveConfig `yaml:"archive"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	Token          string `yaml:"token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type PollConfig struct {
	IntervalMS int `yaml:"interval_ms"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// ArchiveConfig configures optional object-storage archival of
// downloaded originals. Disabled unless an endpoint is set.
type ArchiveConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Enabled reports whether archival is configured.
func (c *ArchiveConfig) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// Load reads the config file at path and applies defaults and
// environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a config without reading any file, applying
// environment overrides and defaults only. Used when no config file is
// present so the CLI works against a local service out of the box.
func Default() *Config {
	var cfg Config
	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg
}

// Environment overrides take precedence over file values. CIP_* names
// match the .env the service itself documents.
func (c *Config) applyEnv() {
	if v := os.Getenv("CIP_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("CIP_API_TOKEN"); v != "" {
		c.API.Token = v
	}
	if v := os.Getenv("CIP_POLL_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Poll.IntervalMS = n
		}
	}
	if v := os.Getenv("CIP_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:8000"
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 60
	}
	if c.Poll.IntervalMS == 0 {
		c.Poll.IntervalMS = 2000
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}
