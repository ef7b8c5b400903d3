// Package state persists provisioning run records under the user config
// directory.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Philipao0122/audioAgentTour/pkg/provision"
)

const (
	// ConfigDirName is the name of the config directory.
	ConfigDirName = "provision"
	// RunsFileName is the name of the run-history file.
	RunsFileName = "runs.json"
	// MaxRecords is the number of run records kept.
	MaxRecords = 50
)

// Store manages persistent run history.
type Store struct {
	configDir string
	mu        sync.Mutex
}

// NewStore creates a store rooted at the user config directory.
func NewStore() (*Store, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	return &Store{configDir: configDir}, nil
}

// NewStoreWithDir creates a store with a custom directory.
func NewStoreWithDir(dir string) *Store {
	return &Store{configDir: dir}
}

// getConfigDir returns the config directory path.
func getConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise ~/.config
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDirName), nil
}

// Append adds a record to the history, keeping the most recent MaxRecords.
func (s *Store) Append(record *provision.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}

	records = append(records, *record)
	if len(records) > MaxRecords {
		records = records[len(records)-MaxRecords:]
	}

	return s.save(records)
}

// Records returns the stored run history, oldest first.
func (s *Store) Records() ([]provision.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Last returns the most recent record, or nil when the history is empty.
func (s *Store) Last() (*provision.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[len(records)-1], nil
}

func (s *Store) load() ([]provision.Record, error) {
	path := filepath.Join(s.configDir, RunsFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read run history: %w", err)
	}

	var records []provision.Record
	if err := json.Unmarshal(data, &records); err != nil {
		// A corrupt history file should not block new runs.
		return nil, nil
	}
	return records, nil
}

func (s *Store) save(records []provision.Record) error {
	if err := os.MkdirAll(s.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode run history: %w", err)
	}

	path := filepath.Join(s.configDir, RunsFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run history: %w", err)
	}
	return nil
}
