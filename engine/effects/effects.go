// Package effects applies the side effects of a successful custom
// action in a fixed order: state changes, then revealing an object,
// then moving the player, then consuming the acted-on object. The
// order is part of the format contract so authors can rely on it.
package effects

import (
	"sort"
	"strings"

	"github.com/nathoo/textquest/engine/state"
	"github.com/nathoo/textquest/types"
)

// Result reports what applying an action did beyond its message.
type Result struct {
	MovedPlayer bool
	FirstVisit  bool
}

// Apply runs an action's effects against the state. The target is the
// object the action was keyed on; it is the one consumed when the
// action says so. State-change keys of the form "object.attr" write
// object attributes, bare keys write global flags.
func Apply(a *types.Action, target string, s *state.State) Result {
	var res Result

	for _, key := range sortedKeys(a.StateChanges) {
		value := a.StateChanges[key]
		if obj, attr, ok := strings.Cut(key, "."); ok {
			s.SetAttr(obj, attr, value)
		} else {
			s.SetFlag(key, value)
		}
	}

	if a.RevealsObject != "" {
		s.SetAttr(a.RevealsObject, "hidden", false)
	}

	if a.MovesPlayer != "" {
		res.MovedPlayer = true
		res.FirstVisit = s.MovePlayer(a.MovesPlayer)
	}

	if a.ConsumesObject && target != "" {
		s.MoveObject(target, types.Location{Kind: types.Nowhere})
	}

	return res
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Deterministic application order within the state-change step.
	sort.Strings(keys)
	return keys
}
