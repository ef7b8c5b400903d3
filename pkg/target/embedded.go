package target

import (
	"fmt"

	"gopkg.in/yaml.v3"

	_ "embed"
)

// defaultsYAML contains the built-in target definitions. A provision.yaml
// next to the project can override paths and toggles but the target set
// itself ships with the binary.
//
//go:embed defaults.yaml
var defaultsYAML []byte

// defaultsFile mirrors the top-level structure of defaults.yaml.
type defaultsFile struct {
	Targets []Target `yaml:"targets"`
}

// LoadDefaults parses the embedded target definitions into a registry.
func LoadDefaults() (*Registry, error) {
	return loadYAML(defaultsYAML)
}

func loadYAML(data []byte) (*Registry, error) {
	var file defaultsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse target definitions: %w", err)
	}

	registry := NewRegistry()
	for _, t := range file.Targets {
		if t.Name == "" {
			return nil, fmt.Errorf("target definition missing name")
		}
		if len(t.Managers) == 0 {
			return nil, fmt.Errorf("target %s has no package managers", t.Name)
		}
		registry.Add(t)
	}

	return registry, nil
}
