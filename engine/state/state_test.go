package state

import (
	"reflect"
	"testing"

	"github.com/nathoo/textquest/types"
)

func testWorld() *types.World {
	return &types.World{
		Rooms: map[string]*types.Room{
			"cell":    {ID: "cell", Objects: []string{"cot", "chest"}},
			"hallway": {ID: "hallway"},
		},
		Objects: map[string]*types.Object{
			"cot":   {ID: "cot", Name: "cot"},
			"chest": {ID: "chest", Name: "chest", Container: true, Contains: []string{"coin"}, Openable: true},
			"coin":  {ID: "coin", Name: "gold coin", Takeable: true},
			"lamp":  {ID: "lamp", Name: "lamp", Takeable: true},
			"ghost": {ID: "ghost", Name: "ghost", Hidden: true},
		},
		Start: types.StartState{
			Room:      "cell",
			Inventory: []string{"lamp"},
			Flags:     map[string]any{"torch_lit": true},
		},
	}
}

func TestNew(t *testing.T) {
	s := New(testWorld())

	if s.CurrentRoom() != "cell" {
		t.Errorf("CurrentRoom = %q, want %q", s.CurrentRoom(), "cell")
	}
	if !s.Visited("cell") {
		t.Error("start room should be visited")
	}
	if s.Status() != types.StatusInProgress {
		t.Errorf("Status = %q, want %q", s.Status(), types.StatusInProgress)
	}
	if got := s.ObjectsInRoom("cell"); !reflect.DeepEqual(got, []string{"chest", "cot"}) {
		t.Errorf("ObjectsInRoom = %v", got)
	}
	if got := s.ObjectsIn("chest"); !reflect.DeepEqual(got, []string{"coin"}) {
		t.Errorf("ObjectsIn(chest) = %v", got)
	}
	if got := s.Inventory(); !reflect.DeepEqual(got, []string{"lamp"}) {
		t.Errorf("Inventory = %v", got)
	}
	if !s.FlagSet("torch_lit") {
		t.Error("start flag not carried over")
	}
	if !s.Hidden("ghost") {
		t.Error("hidden attribute not seeded from definition")
	}
	if loc := s.Location("ghost"); loc.Kind != types.Nowhere {
		t.Errorf("unplaced object location = %+v, want Nowhere", loc)
	}
}

func TestMoveObject_SingleLocation(t *testing.T) {
	s := New(testWorld())

	s.MoveObject("coin", types.Location{Kind: types.InInventory})
	if !s.Carrying("coin") {
		t.Fatal("coin not carried after move")
	}
	if got := s.ObjectsIn("chest"); len(got) != 0 {
		t.Errorf("coin still in chest: %v", got)
	}

	s.MoveObject("coin", types.Location{Kind: types.InRoom, ID: "hallway"})
	if s.Carrying("coin") {
		t.Error("coin still carried after drop")
	}
	if got := s.ObjectsInRoom("hallway"); !reflect.DeepEqual(got, []string{"coin"}) {
		t.Errorf("ObjectsInRoom(hallway) = %v", got)
	}
}

func TestMovePlayer(t *testing.T) {
	s := New(testWorld())

	if first := s.MovePlayer("hallway"); !first {
		t.Error("first visit not reported")
	}
	if first := s.MovePlayer("cell"); first {
		t.Error("start room reported as unvisited")
	}
	if s.CurrentRoom() != "cell" {
		t.Errorf("CurrentRoom = %q", s.CurrentRoom())
	}
}

func TestAttrsAndFlags(t *testing.T) {
	s := New(testWorld())

	if s.Open("chest") {
		t.Error("chest should start closed")
	}
	s.SetAttr("chest", "open", true)
	if !s.Open("chest") {
		t.Error("chest should be open after SetAttr")
	}

	s.SetFlag("alarm_raised", true)
	if !s.FlagSet("alarm_raised") {
		t.Error("flag not set")
	}
	if s.FlagSet("nonexistent") {
		t.Error("unset flag reads as set")
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"", false},
		{"yes", true},
		{0, false},
		{3, true},
		{0.0, false},
		{1.5, true},
	}
	for _, tt := range tests {
		if got := Truthy(tt.in); got != tt.want {
			t.Errorf("Truthy(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWrap_NormalizesNilMaps(t *testing.T) {
	s := Wrap(&types.GameState{CurrentRoom: "cell"})
	s.SetFlag("x", true)
	s.SetAttr("door", "open", true)
	s.MoveObject("coin", types.Location{Kind: types.InInventory})
	if !s.FlagSet("x") || !s.Open("door") || !s.Carrying("coin") {
		t.Error("wrapped state not writable")
	}
}
