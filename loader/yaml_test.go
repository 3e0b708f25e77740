package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/textquest/types"
)

const worldYAML = `
title: Lighthouse Watch
author: Tester
start: lamp_room
inventory: [matches]
flags:
  storm_raging: true
win:
  kind: flag_set
  flag: beacon_lit
  message: The beacon burns through the storm.
lose:
  turn_limit: 30
  message: A ship founders on the rocks.
rooms:
  lamp_room:
    name: Lamp Room
    description: Glass on every side.
    exits:
      down: stairs
    objects: [beacon]
  stairs:
    name: Spiral Stairs
    description: Worn stone steps.
    exits:
      up: lamp_room
objects:
  matches:
    name: box of matches
    adjectives: [small]
    takeable: true
  beacon:
    name: beacon
    scenery: true
    actions:
      "use:matches":
        message: The wick catches and the beacon flares to life.
        condition: "!flags.beacon_lit"
        fail_message: It is already lit.
        state_changes:
          beacon_lit: true
        consumes_object: false
`

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_YAMLWorld(t *testing.T) {
	w, err := Load(writeYAML(t, worldYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if w.Meta.Title != "Lighthouse Watch" {
		t.Errorf("Title = %q", w.Meta.Title)
	}
	if w.Rooms["lamp_room"].Exits["down"].Target != "stairs" {
		t.Errorf("scalar exit = %+v", w.Rooms["lamp_room"].Exits["down"])
	}
	if !w.Objects["matches"].Droppable {
		t.Error("droppable should default to true")
	}

	beacon := w.Objects["beacon"]
	action := beacon.Actions[types.ActionKey{Verb: "use", Target: "matches"}]
	if action == nil {
		t.Fatal("use:matches action missing")
	}
	if action.Condition != "!flags.beacon_lit" {
		t.Errorf("Condition = %q", action.Condition)
	}
	if w.Win.Kind != types.WinFlagSet || w.Win.Flag != "beacon_lit" {
		t.Errorf("Win = %+v", w.Win)
	}
}

func TestLoad_YAMLExplicitDroppable(t *testing.T) {
	doc := strings.Replace(worldYAML, "takeable: true", "takeable: true\n    droppable: false", 1)
	w, err := Load(writeYAML(t, doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if w.Objects["matches"].Droppable {
		t.Error("explicit droppable: false ignored")
	}
}

func TestLoad_YAMLUnknownField(t *testing.T) {
	doc := strings.Replace(worldYAML, "author: Tester", "author: Tester\nweather: rainy", 1)
	if _, err := Load(writeYAML(t, doc)); err == nil {
		t.Fatal("Load accepted an unknown top-level field")
	}
}

func TestLoad_YAMLValidation(t *testing.T) {
	doc := strings.Replace(worldYAML, "down: stairs", "down: basement", 1)
	_, err := Load(writeYAML(t, doc))
	if err == nil || !strings.Contains(err.Error(), "undefined room") {
		t.Fatalf("err = %v, want undefined room", err)
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.toml")
	if err := os.WriteFile(path, []byte("x = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted an unsupported format")
	}
}
