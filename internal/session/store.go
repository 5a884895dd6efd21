package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store handles session state persistence.
type Store struct {
	path string
}

// NewStore creates a store that persists under the given state directory.
func NewStore(stateDir string) *Store {
	return &Store{
		path: filepath.Join(stateDir, "session.json"),
	}
}

// Load reads the session state from disk. A missing file is an empty
// session.
func (s *Store) Load() (State, error) {
	state := Default()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, fmt.Errorf("read session: %w", err)
	}

	if err := json.Unmarshal(data, &state); err != nil {
		return Default(), fmt.Errorf("parse session: %w", err)
	}

	return state, nil
}

// Save writes the session state to disk, replacing the old file atomically.
func (s *Store) Save(state State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, s.path)
}
