// Package state persists the outcome of the most recent update check so the
// CLI can report status without another network round trip. The record is
// advisory display state only; the update client never reads it and a
// download always uses the descriptor from its own session's check.
// Writes are atomic via temp file + rename.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// stateFileName is the file holding the last check record inside StateDir.
const stateFileName = "lastcheck.json"

// CheckState records what the last update check found.
type CheckState struct {
	AppName         string    `json:"app_name"`
	CheckedAt       time.Time `json:"checked_at"`
	CurrentVersion  string    `json:"current_version"`
	LatestVersion   string    `json:"latest_version,omitempty"`
	UpdateAvailable bool      `json:"update_available"`
	ArtifactURL     string    `json:"artifact_url,omitempty"`
}

// Save persists the check record atomically.
func Save(stateDir string, s *CheckState) error {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal check state: %w", err)
	}

	statePath := filepath.Join(stateDir, stateFileName)
	tmpPath := statePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, statePath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Load reads the last check record. Returns nil without error when no record
// exists yet.
func Load(stateDir string) (*CheckState, error) {
	data, err := os.ReadFile(filepath.Join(stateDir, stateFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read check state: %w", err)
	}

	var s CheckState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal check state: %w", err)
	}

	return &s, nil
}

// Clear removes the persisted record if present.
func Clear(stateDir string) error {
	err := os.Remove(filepath.Join(stateDir, stateFileName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove check state: %w", err)
	}
	return nil
}
