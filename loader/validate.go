package loader

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/nathoo/textquest/engine/cond"
	"github.com/nathoo/textquest/engine/vocab"
	"github.com/nathoo/textquest/types"
)

// ValidationError collects every validation error and warning found in
// a world, so authors fix them in one pass.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the compiled world for referential integrity. Play
// assumes a valid world, so everything that could fail mid-game is
// rejected here.
func validate(w *types.World) error {
	ve := &ValidationError{}
	errf := func(format string, args ...any) {
		ve.Errors = append(ve.Errors, fmt.Sprintf(format, args...))
	}
	warnf := func(format string, args ...any) {
		ve.Warnings = append(ve.Warnings, fmt.Sprintf(format, args...))
	}

	if w.Meta.Title == "" {
		errf("game title is required")
	}
	if w.Start.Room == "" {
		errf("start room is required")
	} else if _, ok := w.Rooms[w.Start.Room]; !ok {
		errf("start room %q not found in defined rooms", w.Start.Room)
	}

	// The custom verb table must itself be coherent before action
	// verbs can be checked against it.
	voc, err := vocab.New(w.Verbs)
	if err != nil {
		errf("%v", err)
		voc = nil
	}

	roomRef := func(where, id string) {
		if _, ok := w.Rooms[id]; !ok {
			errf("%s points to undefined room %q", where, id)
		}
	}
	objRef := func(where, id string) {
		if _, ok := w.Objects[id]; !ok {
			errf("%s points to undefined object %q", where, id)
		}
	}

	placements := map[string][]string{}

	for _, id := range sortedRoomIDs(w) {
		room := w.Rooms[id]
		for dir, exit := range room.Exits {
			where := fmt.Sprintf("room %q exit %q", id, dir)
			roomRef(where, exit.Target)
			if exit.Door != "" {
				objRef(where+" door", exit.Door)
			}
			if exit.KeyObject != "" {
				objRef(where+" key", exit.KeyObject)
			}
			if exit.Door != "" && exit.Locked {
				warnf("%s: locked is ignored when a door object gates the exit", where)
			}
		}
		for _, obj := range room.Objects {
			objRef(fmt.Sprintf("room %q objects", id), obj)
			placements[obj] = append(placements[obj], "room "+id)
		}
	}

	for _, id := range sortedObjectIDs(w) {
		obj := w.Objects[id]
		if obj.Name == "" {
			errf("object %q has no name", id)
		}
		for _, inner := range obj.Contains {
			objRef(fmt.Sprintf("object %q contents", id), inner)
			placements[inner] = append(placements[inner], "container "+id)
		}
		if len(obj.Contains) > 0 && !obj.Container {
			errf("object %q has contents but is not a container", id)
		}
		if obj.KeyObject != "" {
			objRef(fmt.Sprintf("object %q key", id), obj.KeyObject)
		}
		if obj.Locked && !obj.Lockable {
			warnf("object %q starts locked but is not lockable", id)
		}
		validateActions(id, obj, w, voc, errf)
	}

	for _, id := range w.Start.Inventory {
		objRef("starting inventory", id)
		placements[id] = append(placements[id], "inventory")
	}

	// Single-location invariant at load time: at most one initial
	// placement per object. Unplaced objects are reachable only
	// through reveals_object, which is fine, but worth flagging when
	// nothing reveals them.
	revealed := map[string]bool{}
	for _, obj := range w.Objects {
		for _, a := range obj.Actions {
			if a.RevealsObject != "" {
				revealed[a.RevealsObject] = true
			}
		}
	}
	for _, id := range sortedObjectIDs(w) {
		places := placements[id]
		if len(places) > 1 {
			errf("object %q placed in more than one location: %s", id, strings.Join(places, ", "))
		}
		if len(places) == 0 && !revealed[id] {
			warnf("object %q is never placed and never revealed", id)
		}
	}

	if w.Win == nil {
		warnf("no win condition defined; the game cannot be won")
	} else {
		validateWin(w.Win, w, roomRef, objRef, errf)
	}
	if w.Lose != nil && w.Lose.TurnLimit <= 0 {
		errf("lose condition requires a positive turn_limit")
	}

	for _, warning := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateActions(id string, obj *types.Object, w *types.World, voc *vocab.Vocabulary, errf func(string, ...any)) {
	for key, action := range obj.Actions {
		where := fmt.Sprintf("object %q action %q", id, key.Verb)

		if voc != nil {
			if _, ok := voc.Entry(key.Verb); !ok {
				errf("%s: verb is neither built-in nor declared", where)
			}
		}
		if key.Target != "" {
			if _, ok := w.Objects[key.Target]; !ok {
				errf("%s: target %q is not a defined object", where, key.Target)
			}
		}
		if action.Condition != "" {
			if _, err := cond.Parse(action.Condition); err != nil {
				errf("%s: %v", where, err)
			}
		}
		if r := action.RevealsObject; r != "" {
			target, ok := w.Objects[r]
			switch {
			case !ok:
				errf("%s: reveals undefined object %q", where, r)
			case !target.Hidden:
				errf("%s: reveals object %q which does not start hidden", where, r)
			}
		}
		if m := action.MovesPlayer; m != "" {
			if _, ok := w.Rooms[m]; !ok {
				errf("%s: moves player to undefined room %q", where, m)
			}
		}
	}
}

func validateWin(wc *types.WinCondition, w *types.World, roomRef, objRef func(string, string), errf func(string, ...any)) {
	switch wc.Kind {
	case types.WinReachRoom:
		roomRef("win condition", wc.Room)
	case types.WinHaveObject:
		objRef("win condition", wc.Object)
	case types.WinFlagSet:
		if wc.Flag == "" {
			errf("win condition flag_set requires a flag name")
		}
	case types.WinObjectInRoom:
		objRef("win condition", wc.Object)
		roomRef("win condition", wc.Room)
	case types.WinAllOf, types.WinAnyOf:
		if len(wc.Conditions) == 0 {
			errf("win condition %q requires nested conditions", wc.Kind)
		}
		for _, child := range wc.Conditions {
			validateWin(child, w, roomRef, objRef, errf)
		}
	default:
		errf("unknown win condition kind %q", wc.Kind)
	}
}

func sortedRoomIDs(w *types.World) []string {
	ids := make([]string, 0, len(w.Rooms))
	for id := range w.Rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedObjectIDs(w *types.World) []string {
	ids := make([]string, 0, len(w.Objects))
	for id := range w.Objects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
