// Package config reads the optional provision.yaml overrides file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the overrides file looked up next to the project.
const FileName = "provision.yaml"

// Config holds run overrides. Everything is optional; targets carry their
// own defaults.
type Config struct {
	// DefaultTarget is used when --target is not given and PROVISION_TARGET
	// is unset.
	DefaultTarget string `yaml:"default_target"`

	// Manifest overrides the dependency-manifest path for all targets.
	Manifest string `yaml:"manifest"`

	// FreezePath overrides the freeze-snapshot path for all targets.
	FreezePath string `yaml:"freeze_path"`

	// SkipOS skips OS package steps for all targets.
	SkipOS bool `yaml:"skip_os"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// Load reads provision.yaml from dir. A missing file yields a zero Config
// and no error; only a malformed file is reported.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}
