// Package config resolves CVE Services credentials for the cve CLI. Values
// come from an optional YAML config file overlaid by CVE_* environment
// variables; environment always wins.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

const configFile = "cve.yaml"

// Environment variables understood by the CLI.
const (
	EnvUser        = "CVE_USER"
	EnvOrg         = "CVE_ORG"
	EnvAPIKey      = "CVE_API_KEY"
	EnvEnvironment = "CVE_ENVIRONMENT"
	EnvAPIURL      = "CVE_API_URL"
)

// Credential validation errors.
var (
	ErrMissingUsername = errors.New("no username configured, set CVE_USER")
	ErrMissingOrg      = errors.New("no organization configured, set CVE_ORG")
	ErrMissingAPIKey   = errors.New("no API key configured, set CVE_API_KEY")
)

// Config holds everything needed to talk to CVE Services.
type Config struct {
	Username    string `yaml:"username"`
	Org         string `yaml:"org"`
	APIKey      string `yaml:"api_key"`
	Environment string `yaml:"environment"`
	URL         string `yaml:"url"`
}

// Path returns the config file location under the user config directory.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", xerrors.Errorf("unable to locate user config dir: %w", err)
	}
	return filepath.Join(dir, "cve", configFile), nil
}

// Load reads the config file if present and overlays the environment on top.
// A missing config file is not an error; missing credentials are only
// reported by Validate so read-only commands can decide for themselves.
func Load() (Config, error) {
	var cfg Config

	path, err := Path()
	if err == nil {
		if err := readFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	overlayEnv(&cfg)
	return cfg, nil
}

// Validate checks that the credentials required on every request are set.
func (c Config) Validate() error {
	if c.Username == "" {
		return ErrMissingUsername
	}
	if c.Org == "" {
		return ErrMissingOrg
	}
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return xerrors.Errorf("unable to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return xerrors.Errorf("unable to parse config file %s: %w", path, err)
	}
	return nil
}

func overlayEnv(cfg *Config) {
	if v := os.Getenv(EnvUser); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv(EnvOrg); v != "" {
		cfg.Org = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvEnvironment); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.URL = v
	}
}
