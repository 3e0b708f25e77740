package save

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nathoo/textquest/types"
)

func TestSnapshotRestore(t *testing.T) {
	gs := &types.GameState{
		CurrentRoom: "vault",
		Locations: map[string]types.Location{
			"key":  {Kind: types.InInventory},
			"coin": {Kind: types.InContainer, ID: "chest"},
			"ash":  {Kind: types.Nowhere},
		},
		Attrs: map[string]map[string]any{
			"door": {"locked": true, "open": false},
		},
		Flags:   map[string]any{"alarm": true},
		Visited: map[string]bool{"vault": true},
		Turns:   7,
		Status:  types.StatusInProgress,
	}

	path := filepath.Join(t.TempDir(), "game.json")
	if err := Snapshot(path, "Test Caves", gs); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	got, err := Restore(path)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got.CurrentRoom != gs.CurrentRoom || got.Turns != gs.Turns || got.Status != gs.Status {
		t.Errorf("scalars: got %+v", got)
	}
	if !reflect.DeepEqual(got.Locations, gs.Locations) {
		t.Errorf("Locations = %v, want %v", got.Locations, gs.Locations)
	}
	if !reflect.DeepEqual(got.Visited, gs.Visited) {
		t.Errorf("Visited = %v, want %v", got.Visited, gs.Visited)
	}
	if locked, ok := got.Attrs["door"]["locked"].(bool); !ok || !locked {
		t.Errorf("door attrs = %v", got.Attrs["door"])
	}
}

func TestRestore_MissingFile(t *testing.T) {
	if _, err := Restore(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("Restore succeeded on a missing file")
	}
}

func TestRestore_BadVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version":99,"state":{}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Restore(path); err == nil {
		t.Fatal("Restore accepted an unsupported version")
	}
}

func TestRestore_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Restore(path); err == nil {
		t.Fatal("Restore accepted garbage")
	}
}
