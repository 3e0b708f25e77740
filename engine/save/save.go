// Package save serializes a play session to disk as JSON. GameState
// holds only plain serializable values, so the snapshot is a faithful
// round trip.
package save

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nathoo/textquest/types"
)

// fileVersion guards against loading snapshots from incompatible
// layouts of GameState.
const fileVersion = 1

type file struct {
	Version int              `json:"version"`
	Title   string           `json:"title,omitempty"`
	State   *types.GameState `json:"state"`
}

// Snapshot writes the game state to path, creating or truncating it.
func Snapshot(path, title string, gs *types.GameState) error {
	data, err := json.MarshalIndent(file{Version: fileVersion, Title: title, State: gs}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding save: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing save: %w", err)
	}
	return nil
}

// Restore reads a snapshot back. Nil maps inside the state are left to
// the caller to normalize when adopting it.
func Restore(path string) (*types.GameState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading save: %w", err)
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding save: %w", err)
	}
	if f.Version != fileVersion {
		return nil, fmt.Errorf("save version %d not supported", f.Version)
	}
	if f.State == nil {
		return nil, fmt.Errorf("save holds no state")
	}
	return f.State, nil
}
