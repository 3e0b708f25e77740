package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/textquest/types"
	lua "github.com/yuin/gopher-lua"
)

type rawRoom struct {
	id    string
	table *lua.LTable
}

type rawObject struct {
	id    string
	table *lua.LTable
}

type rawVerb struct {
	name  string
	table *lua.LTable
}

func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func getBool(tbl *lua.LTable, key string, def bool) bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return def
}

func getInt(tbl *lua.LTable, key string) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}

// getStrings returns a list field as a string slice.
func getStrings(tbl *lua.LTable, key string) []string {
	t := getTable(tbl, key)
	if t == nil {
		return nil
	}
	var out []string
	t.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			out = append(out, string(s))
		}
	})
	return out
}

// toGoValue converts a Lua value to a plain Go value recursively.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case *lua.LNilType:
		return nil
	case lua.LString:
		return string(val)
	case *lua.LTable:
		if maxN := val.MaxN(); maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		return m
	default:
		return nil
	}
}

func tableToAnyMap(tbl *lua.LTable) map[string]any {
	if tbl == nil {
		return nil
	}
	m := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			m[string(ks)] = toGoValue(v)
		}
	})
	return m
}

func compile(coll *collector) (*types.World, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("no Game block defined")
	}

	w := &types.World{
		Rooms:   map[string]*types.Room{},
		Objects: map[string]*types.Object{},
	}

	w.Meta = types.Metadata{
		Title:   getString(coll.game, "title"),
		Author:  getString(coll.game, "author"),
		Version: getString(coll.game, "version"),
		Intro:   getString(coll.game, "intro"),
	}
	w.Start = types.StartState{
		Room:      getString(coll.game, "start"),
		Inventory: getStrings(coll.game, "inventory"),
		Flags:     tableToAnyMap(getTable(coll.game, "flags")),
	}

	if winTbl := getTable(coll.game, "win"); winTbl != nil {
		win, err := compileWin(winTbl)
		if err != nil {
			return nil, err
		}
		w.Win = win
	}
	if loseTbl := getTable(coll.game, "lose"); loseTbl != nil {
		w.Lose = &types.LoseCondition{
			TurnLimit: getInt(loseTbl, "turn_limit"),
			Message:   getString(loseTbl, "message"),
		}
	}

	for _, raw := range coll.rooms {
		if _, dup := w.Rooms[raw.id]; dup {
			return nil, fmt.Errorf("duplicate room ID %q", raw.id)
		}
		room, err := compileRoom(raw)
		if err != nil {
			return nil, err
		}
		w.Rooms[raw.id] = room
	}

	for _, raw := range coll.objects {
		if _, dup := w.Objects[raw.id]; dup {
			return nil, fmt.Errorf("duplicate object ID %q", raw.id)
		}
		obj, err := compileObject(raw)
		if err != nil {
			return nil, err
		}
		w.Objects[raw.id] = obj
	}

	for _, raw := range coll.verbs {
		w.Verbs = append(w.Verbs, types.VerbDef{
			Verb:             raw.name,
			Aliases:          getStrings(raw.table, "aliases"),
			RequiresObject:   getBool(raw.table, "requires_object", false),
			RequiresIndirect: getBool(raw.table, "requires_indirect", false),
			Prepositions:     getStrings(raw.table, "prepositions"),
			DefaultMessage:   getString(raw.table, "default_message"),
		})
	}

	return w, nil
}

func compileRoom(raw rawRoom) (*types.Room, error) {
	room := &types.Room{
		ID:          raw.id,
		Name:        getString(raw.table, "name"),
		Description: getString(raw.table, "description"),
		FirstVisit:  getString(raw.table, "first_visit"),
		Objects:     getStrings(raw.table, "objects"),
		Exits:       map[string]types.Exit{},
	}

	if exits := getTable(raw.table, "exits"); exits != nil {
		var err error
		exits.ForEach(func(k, v lua.LValue) {
			dir, ok := k.(lua.LString)
			if !ok {
				return
			}
			switch val := v.(type) {
			case lua.LString:
				// Shorthand: north = "hall".
				room.Exits[string(dir)] = types.Exit{Target: string(val)}
			case *lua.LTable:
				room.Exits[string(dir)] = types.Exit{
					Target:      getString(val, "to"),
					Door:        getString(val, "door"),
					Locked:      getBool(val, "locked", false),
					KeyObject:   getString(val, "key"),
					LockMessage: getString(val, "lock_message"),
					Hidden:      getBool(val, "hidden", false),
				}
			default:
				err = fmt.Errorf("room %q: exit %q must be a room ID or a table", raw.id, dir)
			}
		})
		if err != nil {
			return nil, err
		}
	}

	return room, nil
}

func compileObject(raw rawObject) (*types.Object, error) {
	obj := &types.Object{
		ID:          raw.id,
		Name:        getString(raw.table, "name"),
		Adjectives:  getStrings(raw.table, "adjectives"),
		Description: getString(raw.table, "description"),
		ExamineText: getString(raw.table, "examine"),
		Takeable:    getBool(raw.table, "takeable", false),
		Droppable:   getBool(raw.table, "droppable", true),
		Readable:    getBool(raw.table, "readable", false),
		ReadText:    getString(raw.table, "read_text"),
		Openable:    getBool(raw.table, "openable", false),
		Open:        getBool(raw.table, "open", false),
		Container:   getBool(raw.table, "container", false),
		Contains:    getStrings(raw.table, "contains"),
		Lockable:    getBool(raw.table, "lockable", false),
		Locked:      getBool(raw.table, "locked", false),
		KeyObject:   getString(raw.table, "key"),
		Scenery:     getBool(raw.table, "scenery", false),
		Hidden:      getBool(raw.table, "hidden", false),
	}

	if actions := getTable(raw.table, "actions"); actions != nil {
		obj.Actions = map[types.ActionKey]*types.Action{}
		var err error
		actions.ForEach(func(k, v lua.LValue) {
			key, ok := k.(lua.LString)
			if !ok {
				return
			}
			tbl, ok := v.(*lua.LTable)
			if !ok {
				err = fmt.Errorf("object %q: action %q must be a table", raw.id, key)
				return
			}
			obj.Actions[parseActionKey(string(key))] = compileAction(tbl)
		})
		if err != nil {
			return nil, err
		}
	}

	return obj, nil
}

// parseActionKey splits "verb" or "verb:target_id" into a typed key.
func parseActionKey(key string) types.ActionKey {
	verb, target, _ := strings.Cut(key, ":")
	return types.ActionKey{Verb: verb, Target: target}
}

func compileAction(tbl *lua.LTable) *types.Action {
	return &types.Action{
		Message:        getString(tbl, "message"),
		Condition:      getString(tbl, "condition"),
		FailMessage:    getString(tbl, "fail_message"),
		StateChanges:   tableToAnyMap(getTable(tbl, "state_changes")),
		RevealsObject:  getString(tbl, "reveals_object"),
		MovesPlayer:    getString(tbl, "moves_player"),
		ConsumesObject: getBool(tbl, "consumes_object", false),
	}
}

func compileWin(tbl *lua.LTable) (*types.WinCondition, error) {
	wc := &types.WinCondition{
		Kind:    getString(tbl, "kind"),
		Room:    getString(tbl, "room"),
		Object:  getString(tbl, "object"),
		Flag:    getString(tbl, "flag"),
		Message: getString(tbl, "message"),
	}
	if wc.Kind == "" {
		return nil, fmt.Errorf("win condition missing kind")
	}

	if children := getTable(tbl, "conditions"); children != nil {
		var err error
		children.ForEach(func(_, v lua.LValue) {
			child, ok := v.(*lua.LTable)
			if !ok {
				err = fmt.Errorf("win condition %q: children must be tables", wc.Kind)
				return
			}
			sub, cerr := compileWin(child)
			if cerr != nil {
				err = cerr
				return
			}
			wc.Conditions = append(wc.Conditions, sub)
		})
		if err != nil {
			return nil, err
		}
	}

	return wc, nil
}
