// Package state owns the mutable world during play. Object whereabouts
// live in a single location table keyed by object ID, so an object can
// never be in two places at once; the inventory is derived from it.
package state

import (
	"sort"

	"github.com/nathoo/textquest/types"
)

// State wraps a GameState with accessors that keep its invariants.
type State struct {
	game *types.GameState
}

// New builds the starting state for a world: locations seeded from room
// object lists, container contents, and the starting inventory; dynamic
// attributes seeded from object definitions.
func New(w *types.World) *State {
	gs := &types.GameState{
		CurrentRoom: w.Start.Room,
		Locations:   make(map[string]types.Location),
		Attrs:       make(map[string]map[string]any),
		Flags:       make(map[string]any),
		Visited:     map[string]bool{w.Start.Room: true},
		Status:      types.StatusInProgress,
	}

	for id, room := range w.Rooms {
		for _, obj := range room.Objects {
			gs.Locations[obj] = types.Location{Kind: types.InRoom, ID: id}
		}
		for dir, exit := range room.Exits {
			if exit.Hidden || exit.Door == "" && exit.Locked {
				gs.Attrs[types.ExitAttrID(id, dir)] = map[string]any{
					"locked": exit.Door == "" && exit.Locked,
					"hidden": exit.Hidden,
				}
			}
		}
	}
	for id, obj := range w.Objects {
		for _, inner := range obj.Contains {
			gs.Locations[inner] = types.Location{Kind: types.InContainer, ID: id}
		}
		if _, ok := gs.Locations[id]; !ok {
			gs.Locations[id] = types.Location{Kind: types.Nowhere}
		}
	}
	for _, id := range w.Start.Inventory {
		gs.Locations[id] = types.Location{Kind: types.InInventory}
	}

	for id, obj := range w.Objects {
		attrs := map[string]any{
			"open":   obj.Open,
			"locked": obj.Locked,
			"hidden": obj.Hidden,
		}
		gs.Attrs[id] = attrs
	}

	for k, v := range w.Start.Flags {
		gs.Flags[k] = v
	}

	return &State{game: gs}
}

// Wrap adopts an existing GameState, normalizing nil maps. Used when
// restoring a save.
func Wrap(gs *types.GameState) *State {
	if gs.Locations == nil {
		gs.Locations = make(map[string]types.Location)
	}
	if gs.Attrs == nil {
		gs.Attrs = make(map[string]map[string]any)
	}
	if gs.Flags == nil {
		gs.Flags = make(map[string]any)
	}
	if gs.Visited == nil {
		gs.Visited = make(map[string]bool)
	}
	return &State{game: gs}
}

// Game exposes the underlying snapshot for saving.
func (s *State) Game() *types.GameState { return s.game }

func (s *State) CurrentRoom() string        { return s.game.CurrentRoom }
func (s *State) Status() types.Status       { return s.game.Status }
func (s *State) EndMessage() string         { return s.game.EndMessage }
func (s *State) Turns() int                 { return s.game.Turns }
func (s *State) Visited(room string) bool   { return s.game.Visited[room] }

// MovePlayer relocates the player and returns true on the first visit.
func (s *State) MovePlayer(room string) (firstVisit bool) {
	s.game.CurrentRoom = room
	if s.game.Visited[room] {
		return false
	}
	s.game.Visited[room] = true
	return true
}

func (s *State) EndTurn()  { s.game.Turns++ }

// End marks the game over with the given status and closing message.
func (s *State) End(status types.Status, message string) {
	s.game.Status = status
	s.game.EndMessage = message
}

// Location reports where an object currently is.
func (s *State) Location(id string) types.Location {
	if loc, ok := s.game.Locations[id]; ok {
		return loc
	}
	return types.Location{Kind: types.Nowhere}
}

// MoveObject rewrites an object's single location record.
func (s *State) MoveObject(id string, loc types.Location) {
	s.game.Locations[id] = loc
}

// Inventory returns carried object IDs, sorted.
func (s *State) Inventory() []string {
	var out []string
	for id, loc := range s.game.Locations {
		if loc.Kind == types.InInventory {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Carrying reports whether the player holds the object.
func (s *State) Carrying(id string) bool {
	return s.game.Locations[id].Kind == types.InInventory
}

// ObjectsInRoom returns the IDs placed directly in a room, sorted.
func (s *State) ObjectsInRoom(room string) []string {
	var out []string
	for id, loc := range s.game.Locations {
		if loc.Kind == types.InRoom && loc.ID == room {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// ObjectsIn returns the IDs directly inside a container, sorted.
func (s *State) ObjectsIn(container string) []string {
	var out []string
	for id, loc := range s.game.Locations {
		if loc.Kind == types.InContainer && loc.ID == container {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Attr reads a dynamic object attribute. Missing attributes read as nil.
func (s *State) Attr(id, name string) any {
	if attrs, ok := s.game.Attrs[id]; ok {
		return attrs[name]
	}
	return nil
}

// SetAttr writes a dynamic object attribute.
func (s *State) SetAttr(id, name string, value any) {
	attrs, ok := s.game.Attrs[id]
	if !ok {
		attrs = make(map[string]any)
		s.game.Attrs[id] = attrs
	}
	attrs[name] = value
}

func (s *State) Open(id string) bool   { return Truthy(s.Attr(id, "open")) }
func (s *State) Locked(id string) bool { return Truthy(s.Attr(id, "locked")) }
func (s *State) Hidden(id string) bool { return Truthy(s.Attr(id, "hidden")) }

// Flag reads a global flag. Unset flags read as nil.
func (s *State) Flag(name string) any { return s.game.Flags[name] }

// SetFlag writes a global flag.
func (s *State) SetFlag(name string, value any) { s.game.Flags[name] = value }

// FlagSet reports whether a flag holds a truthy value.
func (s *State) FlagSet(name string) bool { return Truthy(s.game.Flags[name]) }

// Truthy reports whether a dynamic value counts as true: false, nil,
// zero, and "" are false, everything else true.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	default:
		return true
	}
}
