package effects

import (
	"testing"

	"github.com/nathoo/textquest/engine/state"
	"github.com/nathoo/textquest/types"
)

func testState() *state.State {
	w := &types.World{
		Rooms: map[string]*types.Room{
			"shrine": {ID: "shrine", Objects: []string{"altar", "idol"}},
			"crypt":  {ID: "crypt"},
		},
		Objects: map[string]*types.Object{
			"altar":   {ID: "altar", Name: "altar"},
			"idol":    {ID: "idol", Name: "jade idol", Hidden: true},
			"incense": {ID: "incense", Name: "incense", Takeable: true},
		},
		Start: types.StartState{Room: "shrine", Inventory: []string{"incense"}},
	}
	return state.New(w)
}

func TestApply_StateChanges(t *testing.T) {
	s := testState()
	a := &types.Action{
		StateChanges: map[string]any{
			"altar.blessed":  true,
			"ritual_started": true,
		},
	}

	Apply(a, "altar", s)

	if !state.Truthy(s.Attr("altar", "blessed")) {
		t.Error("dotted key should write an object attribute")
	}
	if !s.FlagSet("ritual_started") {
		t.Error("bare key should write a global flag")
	}
}

func TestApply_Reveal(t *testing.T) {
	s := testState()
	if !s.Hidden("idol") {
		t.Fatal("idol should start hidden")
	}

	Apply(&types.Action{RevealsObject: "idol"}, "altar", s)

	if s.Hidden("idol") {
		t.Error("idol still hidden after reveal")
	}
}

func TestApply_MovesPlayer(t *testing.T) {
	s := testState()

	res := Apply(&types.Action{MovesPlayer: "crypt"}, "", s)

	if s.CurrentRoom() != "crypt" {
		t.Errorf("CurrentRoom = %q, want %q", s.CurrentRoom(), "crypt")
	}
	if !res.MovedPlayer || !res.FirstVisit {
		t.Errorf("result = %+v, want moved first visit", res)
	}

	res = Apply(&types.Action{MovesPlayer: "shrine"}, "", s)
	if res.FirstVisit {
		t.Error("start room reported as first visit")
	}
}

func TestApply_Consumes(t *testing.T) {
	s := testState()

	Apply(&types.Action{ConsumesObject: true}, "incense", s)

	if loc := s.Location("incense"); loc.Kind != types.Nowhere {
		t.Errorf("incense location = %+v, want Nowhere", loc)
	}
	if s.Carrying("incense") {
		t.Error("consumed object still in inventory")
	}
}

func TestApply_Order(t *testing.T) {
	// Reveal and consume together: the revealed object stays revealed
	// even when the target vanishes.
	s := testState()

	Apply(&types.Action{
		StateChanges:   map[string]any{"ritual_started": true},
		RevealsObject:  "idol",
		ConsumesObject: true,
	}, "incense", s)

	if s.Hidden("idol") || !s.FlagSet("ritual_started") {
		t.Error("earlier effects lost")
	}
	if loc := s.Location("incense"); loc.Kind != types.Nowhere {
		t.Error("target not consumed")
	}
}
