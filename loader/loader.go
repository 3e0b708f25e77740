// Package loader reads world definitions into Go structs before play
// begins. Worlds are authored either as Lua files (a declarative DSL
// run in a sandboxed VM that is discarded after loading) or as a single
// YAML document. Both forms compile to the same types.World and pass
// the same referential validation.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nathoo/textquest/types"
	lua "github.com/yuin/gopher-lua"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	game    *lua.LTable
	rooms   []rawRoom
	objects []rawObject
	verbs   []rawVerb
}

// Load reads a world from path: a directory of .lua files, a single
// .lua file, or a .yaml/.yml document. The result is validated; a
// *ValidationError lists every problem found.
func Load(path string) (*types.World, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading world %s: %w", path, err)
	}

	var w *types.World
	switch {
	case info.IsDir():
		w, err = loadLuaDir(path)
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		w, err = loadYAML(path)
	case strings.HasSuffix(path, ".lua"):
		w, err = loadLuaFiles(filepath.Dir(path), []string{filepath.Base(path)})
	default:
		return nil, fmt.Errorf("world %s: unsupported format", path)
	}
	if err != nil {
		return nil, err
	}

	if err := validate(w); err != nil {
		return nil, err
	}
	return w, nil
}

func loadLuaDir(dir string) (*types.World, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading world directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}
	return loadLuaFiles(dir, sortedLuaFiles(files))
}

func loadLuaFiles(dir string, files []string) (*types.World, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range files {
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	return compile(coll)
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that could touch the host or break
// determinism.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}

// sortedLuaFiles puts game.lua first so metadata is defined before the
// content files that rely on it; the rest load alphabetically.
func sortedLuaFiles(files []string) []string {
	sort.Strings(files)
	for i, f := range files {
		if f == "game.lua" {
			return append([]string{f}, append(append([]string{}, files[:i]...), files[i+1:]...)...)
		}
	}
	return files
}
