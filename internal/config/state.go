package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/gofrs/flock"
)

const (
	// StatePathEnvVar overrides the state file location.
	StatePathEnvVar = "PDFSMITH_STATE_PATH"

	stateFileName = "state.json"

	// maxRecentFiles caps the recent-files list.
	maxRecentFiles = 20
)

// State is the cached cross-invocation state: the files most recently
// processed and the last output directory used.
type State struct {
	RecentFiles   []string `json:"recent_files,omitempty"`
	LastOutputDir string   `json:"last_output_dir,omitempty"`

	mu sync.Mutex `json:"-"`
}

// LoadState loads the state file from disk. A missing or unparsable
// file yields empty state.
func LoadState() *State {
	state := &State{}
	if data, err := os.ReadFile(statePath()); err == nil {
		// Ignore parse errors and start fresh.
		_ = json.Unmarshal(data, state)
	}
	return state
}

// AddRecent records path at the head of the recent-files list, pruning
// duplicates and trimming to the cap, then saves.
func (s *State) AddRecent(path string) error {
	s.mu.Lock()
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	s.RecentFiles = slices.DeleteFunc(s.RecentFiles, func(p string) bool { return p == path })
	s.RecentFiles = append([]string{path}, s.RecentFiles...)
	if len(s.RecentFiles) > maxRecentFiles {
		s.RecentFiles = s.RecentFiles[:maxRecentFiles]
	}
	s.mu.Unlock()

	return s.Save()
}

// SetLastOutputDir records the directory of the most recent output and
// saves.
func (s *State) SetLastOutputDir(dir string) error {
	s.mu.Lock()
	s.LastOutputDir = dir
	s.mu.Unlock()

	return s.Save()
}

// Recent returns a copy of the recent-files list, most recent first.
func (s *State) Recent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.RecentFiles)
}

// Save writes the state to disk. Concurrent pdfsmith invocations may
// save at the same time, so the write is serialised with a file lock.
func (s *State) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := statePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	fileLock := flock.New(path + ".lock")
	if err := fileLock.Lock(); err != nil {
		return fmt.Errorf("failed to lock state file: %w", err)
	}
	defer func() { _ = fileLock.Unlock() }()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// statePath returns the state file location, honouring the environment
// override.
func statePath() string {
	if custom := os.Getenv(StatePathEnvVar); custom != "" {
		return custom
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, configDirName, stateFileName)
}
