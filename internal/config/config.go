package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	Dir        = "upkeep"
	ConfigFile = "config.yaml"
	Version    = "1"
)

// ErrNoDirectories is returned when no Vagrant directories are configured.
var ErrNoDirectories = errors.New("no vagrant directories configured")

type Config struct {
	Version string  `yaml:"version"`
	Yes     bool    `yaml:"yes"`
	DryRun  bool    `yaml:"dry_run,omitempty"`
	Vagrant Vagrant `yaml:"vagrant"`
}

type Vagrant struct {
	Binary      string   `yaml:"binary,omitempty"`
	Directories []string `yaml:"directories"`
	PowerOn     *bool    `yaml:"power_on,omitempty"`
	KeepGoing   bool     `yaml:"keep_going,omitempty"`
}

// ShouldPowerOn reports whether powered off boxes are brought up. Defaults to true.
func (v Vagrant) ShouldPowerOn() bool { return v.PowerOn == nil || *v.PowerOn }

// BinaryName returns the configured vagrant binary, "vagrant" if unset.
func (v Vagrant) BinaryName() string {
	if v.Binary == "" {
		return "vagrant"
	}
	return v.Binary
}

// RequireDirectories returns the configured directories or ErrNoDirectories.
func (v Vagrant) RequireDirectories() ([]string, error) {
	if len(v.Directories) == 0 {
		return nil, ErrNoDirectories
	}
	return v.Directories, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/upkeep/config.yaml (or the platform equivalent).
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(base, Dir, ConfigFile), nil
}

// Load reads the config file at path. A missing file yields an empty config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{Version: Version}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Exists returns true if a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
