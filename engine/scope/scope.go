// Package scope resolves noun phrases to object IDs against what the
// player can currently see: the room's objects, the inventory, and the
// contents of open containers in either. Hidden objects are never in
// scope. Resolution is read-only.
package scope

import (
	"sort"
	"strings"

	"github.com/nathoo/textquest/engine/state"
	"github.com/nathoo/textquest/types"
)

// NotFoundError indicates no visible object matched the phrase.
type NotFoundError struct {
	Phrase string
}

func (e *NotFoundError) Error() string {
	return "You can't see any " + e.Phrase + " here."
}

// AmbiguousError indicates the phrase matched several visible objects
// equally well. Candidates holds their display names in a stable order.
type AmbiguousError struct {
	Phrase     string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	noun := e.Phrase
	if i := strings.LastIndex(noun, " "); i >= 0 {
		noun = noun[i+1:]
	}
	return "Which " + noun + " do you mean, the " + strings.Join(e.Candidates, " or the ") + "?"
}

// Visible returns the IDs of every object the player can currently
// refer to, sorted for determinism.
func Visible(w *types.World, s *state.State) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(id string) {
		if seen[id] {
			return
		}
		obj := w.Objects[id]
		if obj == nil || s.Hidden(id) {
			return
		}
		seen[id] = true
		out = append(out, id)
		if obj.Container && s.Open(id) {
			for _, inner := range s.ObjectsIn(id) {
				if !seen[inner] && !s.Hidden(inner) {
					seen[inner] = true
					out = append(out, inner)
				}
			}
		}
	}

	for _, id := range s.ObjectsInRoom(s.CurrentRoom()) {
		add(id)
	}
	for _, id := range s.Inventory() {
		add(id)
	}

	sort.Strings(out)
	return out
}

// Resolve matches a noun phrase against the visible set. An exact ID or
// exact full-name match wins outright; otherwise every adjective/noun
// split of the phrase is scored against each candidate and the best
// score wins. Equal best scores are ambiguous.
func Resolve(phrase *types.NounPhrase, w *types.World, s *state.State) (string, error) {
	ids := Visible(w, s)
	return resolveAmong(phrase, ids, w, s)
}

// ResolveInventory matches a noun phrase against carried objects only.
func ResolveInventory(phrase *types.NounPhrase, w *types.World, s *state.State) (string, error) {
	return resolveAmong(phrase, s.Inventory(), w, s)
}

func resolveAmong(phrase *types.NounPhrase, ids []string, w *types.World, s *state.State) (string, error) {
	joined := strings.Join(phrase.Words, " ")

	// Exact ID, then exact full name.
	for _, id := range ids {
		if id == joined {
			return id, nil
		}
	}
	for _, id := range ids {
		if strings.ToLower(w.Objects[id].Name) == joined {
			return id, nil
		}
	}

	best := 0
	var matches []string
	for _, id := range ids {
		if sc := score(phrase.Words, w.Objects[id]); sc > 0 {
			switch {
			case sc > best:
				best = sc
				matches = []string{id}
			case sc == best:
				matches = append(matches, id)
			}
		}
	}

	// Last resort for one-word phrases: partial name match.
	if len(matches) == 0 && len(phrase.Words) == 1 {
		for _, id := range ids {
			if strings.Contains(strings.ToLower(w.Objects[id].Name), phrase.Words[0]) {
				matches = append(matches, id)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Phrase: joined}
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, id := range matches {
			names[i] = w.Objects[id].Name
		}
		sort.Strings(names)
		return "", &AmbiguousError{Phrase: joined, Candidates: names}
	}
}

// score tries every split of the phrase into adjectives + head noun
// and returns the best fit against the object's noun and adjective
// lists. Zero means no match.
func score(words []string, obj *types.Object) int {
	best := 0
	for split := 0; split < len(words); split++ {
		adjs, noun := words[:split], words[split:]
		head := strings.Join(noun, " ")
		if !nounMatches(head, obj) {
			continue
		}
		if !adjsMatch(adjs, obj) {
			continue
		}
		// Noun match is worth 1; each matching adjective sharpens it.
		sc := 1 + len(adjs)
		if sc > best {
			best = sc
		}
	}
	return best
}

func nounMatches(head string, obj *types.Object) bool {
	name := strings.ToLower(obj.Name)
	if head == name || head == obj.ID {
		return true
	}
	// Bare head noun: the last word of the display name.
	if i := strings.LastIndex(name, " "); i >= 0 && head == name[i+1:] {
		return true
	}
	return false
}

func adjsMatch(adjs []string, obj *types.Object) bool {
	for _, a := range adjs {
		if !hasAdjective(a, obj) {
			return false
		}
	}
	return true
}

func hasAdjective(a string, obj *types.Object) bool {
	for _, adj := range obj.Adjectives {
		if a == strings.ToLower(adj) {
			return true
		}
	}
	// Leading words of the display name count as adjectives.
	name := strings.ToLower(obj.Name)
	if i := strings.LastIndex(name, " "); i >= 0 {
		for _, w := range strings.Fields(name[:i]) {
			if a == w {
				return true
			}
		}
	}
	return false
}
