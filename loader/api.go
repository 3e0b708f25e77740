package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the Lua constructors and win-condition helpers
// as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerWinHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", start = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Room "id" { ... } — curried: Room("id") returns a function that
	// takes the definition table.
	L.SetGlobal("Room", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.rooms = append(coll.rooms, rawRoom{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Object "id" { ... } — curried.
	L.SetGlobal("Object", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.objects = append(coll.objects, rawObject{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Verb "name" { aliases = {...}, ... } — curried.
	L.SetGlobal("Verb", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.verbs = append(coll.verbs, rawVerb{name: name, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))
}

// Win-condition helpers return marker tables the compiler recognizes
// by their "kind" field.
func registerWinHelpers(L *lua.LState) {
	leaf := func(kind string, fields ...string) lua.LGFunction {
		return func(L *lua.LState) int {
			tbl := L.NewTable()
			tbl.RawSetString("kind", lua.LString(kind))
			for i, f := range fields {
				tbl.RawSetString(f, lua.LString(L.CheckString(i+1)))
			}
			// Trailing optional message.
			if msg := L.OptString(len(fields)+1, ""); msg != "" {
				tbl.RawSetString("message", lua.LString(msg))
			}
			L.Push(tbl)
			return 1
		}
	}

	L.SetGlobal("ReachRoom", L.NewFunction(leaf("reach_room", "room")))
	L.SetGlobal("HaveObject", L.NewFunction(leaf("have_object", "object")))
	L.SetGlobal("FlagSet", L.NewFunction(leaf("flag_set", "flag")))
	L.SetGlobal("ObjectInRoom", L.NewFunction(leaf("object_in_room", "object", "room")))

	group := func(kind string) lua.LGFunction {
		return func(L *lua.LState) int {
			children := L.CheckTable(1)
			tbl := L.NewTable()
			tbl.RawSetString("kind", lua.LString(kind))
			tbl.RawSetString("conditions", children)
			if msg := L.OptString(2, ""); msg != "" {
				tbl.RawSetString("message", lua.LString(msg))
			}
			L.Push(tbl)
			return 1
		}
	}

	L.SetGlobal("AllOf", L.NewFunction(group("all_of")))
	L.SetGlobal("AnyOf", L.NewFunction(group("any_of")))
}
