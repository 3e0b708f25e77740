// Package vocab holds the verb table the grammar parser consults: the
// built-in verbs with their aliases and argument shapes, plus any custom
// verbs declared by the loaded world.
package vocab

import (
	"fmt"

	"github.com/nathoo/textquest/types"
)

// Arity describes how many object slots a verb accepts.
type Arity int

const (
	// NoObject verbs stand alone (look, inventory, wait, quit).
	NoObject Arity = iota
	// DirectOnly verbs take exactly one noun phrase (take, examine).
	DirectOnly
	// DirectIndirect verbs may take a second phrase after a preposition
	// (put X in Y, unlock X with Y).
	DirectIndirect
)

// Entry is one canonical verb.
type Entry struct {
	Verb           string
	Arity          Arity
	RequiresObject bool            // a direct object must be supplied
	Prepositions   map[string]bool // allowed prepositions; nil = any
	DefaultMessage string          // custom verbs: reply when nothing handles it
	Custom         bool
}

// Vocabulary is built once per loaded world.
type Vocabulary struct {
	entries   map[string]*Entry
	aliases   map[string]string    // alias word → canonical verb
	multiword map[[2]string]string // two-word alias → canonical verb
}

// Canonical direction names, plus their shorthand forms.
var directions = map[string]string{
	"north": "north", "n": "north",
	"south": "south", "s": "south",
	"east": "east", "e": "east",
	"west": "west", "w": "west",
	"up": "up", "u": "up",
	"down": "down", "d": "down",
	"in": "in", "inside": "in",
	"out": "out", "outside": "out",
}

// Preposition words normalized to their canonical form.
var prepositions = map[string]string{
	"in": "in", "into": "in",
	"on": "on", "onto": "on", "upon": "on",
	"with": "with", "using": "with",
	"to":      "to",
	"from":    "from",
	"at":      "at",
	"under":   "under",
	"beneath": "under",
	"below":   "under",
}

type builtin struct {
	verb     string
	arity    Arity
	requires bool
	preps    []string
	aliases  []string
}

var builtins = []builtin{
	{verb: "go", arity: DirectOnly, requires: true, aliases: []string{"walk", "move", "head"}},
	{verb: "take", arity: DirectOnly, requires: true, aliases: []string{"get", "grab"}},
	{verb: "drop", arity: DirectOnly, requires: true, aliases: []string{"discard"}},
	{verb: "put", arity: DirectIndirect, requires: true, preps: []string{"in", "on"}, aliases: []string{"place"}},
	{verb: "give", arity: DirectIndirect, requires: true, preps: []string{"to"}, aliases: []string{"offer", "hand"}},
	{verb: "examine", arity: DirectOnly, requires: true, aliases: []string{"x", "inspect"}},
	{verb: "read", arity: DirectOnly, requires: true},
	{verb: "open", arity: DirectOnly, requires: true},
	{verb: "close", arity: DirectOnly, requires: true, aliases: []string{"shut"}},
	{verb: "lock", arity: DirectIndirect, requires: true, preps: []string{"with"}},
	{verb: "unlock", arity: DirectIndirect, requires: true, preps: []string{"with"}},
	{verb: "use", arity: DirectIndirect, requires: true, preps: []string{"with", "on"}},
	{verb: "talk", arity: DirectOnly, requires: true, aliases: []string{"speak"}},
	{verb: "show", arity: DirectIndirect, requires: true, preps: []string{"to"}, aliases: []string{"present", "display"}},
	{verb: "inventory", arity: NoObject, aliases: []string{"i", "inv"}},
	{verb: "look", arity: NoObject, aliases: []string{"l"}},
	{verb: "wait", arity: NoObject, aliases: []string{"z"}},
	{verb: "help", arity: NoObject, aliases: []string{"?"}},
	{verb: "quit", arity: NoObject, aliases: []string{"q"}},
}

// Multi-word verb phrases checked before single-word matching.
var multiwordBuiltins = map[[2]string]string{
	{"pick", "up"}:    "take",
	{"put", "down"}:   "drop",
	{"look", "at"}:    "examine",
	{"look", "in"}:    "examine",
	{"look", "under"}: "examine",
	{"turn", "on"}:    "use",
	{"turn", "off"}:   "use",
	{"switch", "on"}:  "use",
	{"switch", "off"}: "use",
	{"talk", "to"}:    "talk",
	{"speak", "to"}:   "talk",
	{"speak", "with"}: "talk",
}

// New builds a vocabulary from the built-in verb set merged with the
// world's custom verb definitions. A custom verb may not shadow a
// built-in canonical name or alias.
func New(defs []types.VerbDef) (*Vocabulary, error) {
	v := &Vocabulary{
		entries:   make(map[string]*Entry),
		aliases:   make(map[string]string),
		multiword: make(map[[2]string]string, len(multiwordBuiltins)),
	}

	for _, b := range builtins {
		entry := &Entry{Verb: b.verb, Arity: b.arity, RequiresObject: b.requires}
		if len(b.preps) > 0 {
			entry.Prepositions = make(map[string]bool, len(b.preps))
			for _, p := range b.preps {
				entry.Prepositions[p] = true
			}
		}
		v.entries[b.verb] = entry
		v.aliases[b.verb] = b.verb
		for _, a := range b.aliases {
			v.aliases[a] = b.verb
		}
	}
	for phrase, verb := range multiwordBuiltins {
		v.multiword[phrase] = verb
	}

	for _, def := range defs {
		if _, taken := v.aliases[def.Verb]; taken {
			return nil, fmt.Errorf("custom verb %q shadows a built-in verb", def.Verb)
		}
		entry := &Entry{
			Verb:           def.Verb,
			RequiresObject: def.RequiresObject,
			DefaultMessage: def.DefaultMessage,
			Custom:         true,
		}
		switch {
		case def.RequiresIndirect || len(def.Prepositions) > 0:
			entry.Arity = DirectIndirect
		case def.RequiresObject:
			entry.Arity = DirectOnly
		default:
			entry.Arity = NoObject
		}
		if len(def.Prepositions) > 0 {
			entry.Prepositions = make(map[string]bool, len(def.Prepositions))
			for _, p := range def.Prepositions {
				entry.Prepositions[p] = true
			}
		}
		v.entries[def.Verb] = entry
		v.aliases[def.Verb] = def.Verb
		for _, a := range def.Aliases {
			if _, taken := v.aliases[a]; taken {
				return nil, fmt.Errorf("custom verb alias %q shadows an existing verb", a)
			}
			v.aliases[a] = def.Verb
		}
	}

	return v, nil
}

// Lookup resolves a single word to its canonical verb entry.
func (v *Vocabulary) Lookup(word string) (*Entry, bool) {
	canonical, ok := v.aliases[word]
	if !ok {
		return nil, false
	}
	return v.entries[canonical], true
}

// LookupMulti resolves a two-word phrase ("pick up") to its canonical
// verb entry.
func (v *Vocabulary) LookupMulti(first, second string) (*Entry, bool) {
	canonical, ok := v.multiword[[2]string{first, second}]
	if !ok {
		return nil, false
	}
	return v.entries[canonical], true
}

// Entry returns the entry for a canonical verb name.
func (v *Vocabulary) Entry(verb string) (*Entry, bool) {
	e, ok := v.entries[verb]
	return e, ok
}

// Direction normalizes a direction word ("n" → "north"). Returns false
// for non-directions.
func Direction(word string) (string, bool) {
	d, ok := directions[word]
	return d, ok
}

// Preposition normalizes a preposition word ("into" → "in"). Returns
// false for non-prepositions.
func Preposition(word string) (string, bool) {
	p, ok := prepositions[word]
	return p, ok
}
