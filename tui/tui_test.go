package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/textquest/engine"
	"github.com/nathoo/textquest/types"
)

func testWorld() *types.World {
	return &types.World{
		Meta: types.Metadata{Title: "Test Game", Intro: "Welcome."},
		Rooms: map[string]*types.Room{
			"hall": {
				ID:          "hall",
				Name:        "Grand Hall",
				Description: "A grand hall.",
				Exits:       map[string]types.Exit{"north": {Target: "garden"}},
				Objects:     []string{"key"},
			},
			"garden": {
				ID:          "garden",
				Name:        "Garden",
				Description: "A peaceful garden.",
				Exits:       map[string]types.Exit{"south": {Target: "hall"}},
			},
		},
		Objects: map[string]*types.Object{
			"key": {ID: "key", Name: "rusty key", Takeable: true, Droppable: true},
		},
		Start: types.StartState{Room: "hall"},
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	eng, err := engine.New(testWorld())
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	m := New(eng)
	m.saveDir = t.TempDir()

	// Simulate the initial window size message so the viewport exists.
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func submit(t *testing.T, m Model, input string) Model {
	t.Helper()
	m.input.SetValue(input)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model)
}

func viewportText(m Model) string {
	var b strings.Builder
	for _, rl := range m.rawLines {
		b.WriteString(rl.text)
		b.WriteString("\n")
	}
	return b.String()
}

func TestModel_IntroOutput(t *testing.T) {
	m := newTestModel(t)

	msg := m.initialOutput()()
	out, ok := msg.(gameOutputMsg)
	if !ok {
		t.Fatalf("initialOutput returned %T", msg)
	}
	joined := strings.Join(out.lines, "\n")
	if !strings.Contains(joined, "Test Game") || !strings.Contains(joined, "A grand hall.") {
		t.Errorf("intro output = %q", joined)
	}
}

func TestModel_GameCommand(t *testing.T) {
	m := newTestModel(t)

	m = submit(t, m, "take key")
	text := viewportText(m)
	if !strings.Contains(text, "> take key") {
		t.Error("input not echoed")
	}
	if !strings.Contains(text, "Taken.") {
		t.Error("engine output missing")
	}
}

func TestModel_MetaSaveLoad(t *testing.T) {
	m := newTestModel(t)

	m = submit(t, m, "take key")
	m = submit(t, m, "/save slot1")
	if !strings.Contains(viewportText(m), "Game saved to slot1.") {
		t.Fatalf("save output missing:\n%s", viewportText(m))
	}

	m = submit(t, m, "drop key")
	m = submit(t, m, "/load slot1")
	if !m.engine.State.Carrying("key") {
		t.Error("load did not restore the inventory")
	}
}

func TestModel_AgainRepeats(t *testing.T) {
	m := newTestModel(t)

	m = submit(t, m, "look")
	m = submit(t, m, "g")
	if got := strings.Count(viewportText(m), "A grand hall."); got != 2 {
		t.Errorf("look output appeared %d times, want 2", got)
	}
}

func TestModel_QuitMeta(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("/quit")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if !m.quitting {
		t.Error("model not quitting after /quit")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestModel_GameOverBlocksCommands(t *testing.T) {
	m := newTestModel(t)

	m = submit(t, m, "quit")
	m = submit(t, m, "look")
	if !strings.Contains(viewportText(m), "The game is over.") {
		t.Error("expected game-over notice")
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory(3)

	if _, ok := h.Prev(); ok {
		t.Error("Prev on empty history should fail")
	}

	h.Push("one")
	h.Push("two")
	h.Push("two") // duplicate skipped
	h.Push("three")

	if got, _ := h.Prev(); got != "three" {
		t.Errorf("Prev = %q, want three", got)
	}
	if got, _ := h.Prev(); got != "two" {
		t.Errorf("Prev = %q, want two", got)
	}
	if got, _ := h.Next(); got != "three" {
		t.Errorf("Next = %q, want three", got)
	}
	if _, ok := h.Next(); ok {
		t.Error("Next past newest should fail")
	}

	h.Push("four") // evicts "one"
	h.ResetCursor()
	for i := 0; i < 3; i++ {
		h.Prev()
	}
	if got, _ := h.Prev(); got != "two" {
		t.Errorf("oldest = %q, want two after eviction", got)
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"short text unchanged", "hello world", 80, "hello world"},
		{"wraps at boundary", "aaa bbb ccc", 7, "aaa bbb\nccc"},
		{"single long word kept", "abcdefghij", 5, "abcdefghij"},
		{"zero width unchanged", "hello world", 0, "hello world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wordWrap(tt.text, tt.width); got != tt.want {
				t.Errorf("wordWrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"A grand hall.", kindNarrative},
		{"Exits: north, south.", kindExits},
		{"You can't take that.", kindError},
		{"I don't understand that.", kindError},
		{"Which key do you mean, the brass key or the silver key?", kindError},
		{"[Game saved to slot1.]", kindSystem},
		{"*** You have won. ***", kindEnding},
	}
	for _, tt := range tests {
		if got := classifyLine(tt.line); got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
