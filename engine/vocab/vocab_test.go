package vocab

import (
	"testing"

	"github.com/nathoo/textquest/types"
)

func TestLookup_Builtins(t *testing.T) {
	v, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		word      string
		wantVerb  string
		wantArity Arity
	}{
		{"take", "take", DirectOnly},
		{"get", "take", DirectOnly},
		{"x", "examine", DirectOnly},
		{"shut", "close", DirectOnly},
		{"put", "put", DirectIndirect},
		{"unlock", "unlock", DirectIndirect},
		{"i", "inventory", NoObject},
		{"l", "look", NoObject},
		{"q", "quit", NoObject},
	}
	for _, tt := range tests {
		entry, ok := v.Lookup(tt.word)
		if !ok {
			t.Errorf("Lookup(%q): not found", tt.word)
			continue
		}
		if entry.Verb != tt.wantVerb || entry.Arity != tt.wantArity {
			t.Errorf("Lookup(%q) = {%s %d}, want {%s %d}",
				tt.word, entry.Verb, entry.Arity, tt.wantVerb, tt.wantArity)
		}
	}

	if _, ok := v.Lookup("frobnicate"); ok {
		t.Error("Lookup(frobnicate): expected not found")
	}
}

func TestLookupMulti(t *testing.T) {
	v, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}

	entry, ok := v.LookupMulti("pick", "up")
	if !ok || entry.Verb != "take" {
		t.Errorf(`LookupMulti("pick", "up") = %v, %v; want take`, entry, ok)
	}
	entry, ok = v.LookupMulti("look", "at")
	if !ok || entry.Verb != "examine" {
		t.Errorf(`LookupMulti("look", "at") = %v, %v; want examine`, entry, ok)
	}
	if _, ok := v.LookupMulti("pick", "flowers"); ok {
		t.Error(`LookupMulti("pick", "flowers"): expected not found`)
	}
}

func TestNew_CustomVerbs(t *testing.T) {
	defs := []types.VerbDef{
		{
			Verb:           "pray",
			Aliases:        []string{"worship"},
			RequiresObject: false,
			DefaultMessage: "Your prayers go unanswered.",
		},
		{
			Verb:           "bribe",
			RequiresObject: true,
			Prepositions:   []string{"with"},
		},
	}
	v, err := New(defs)
	if err != nil {
		t.Fatal(err)
	}

	entry, ok := v.Lookup("worship")
	if !ok || entry.Verb != "pray" || !entry.Custom {
		t.Errorf("Lookup(worship) = %+v, %v; want custom pray", entry, ok)
	}
	if entry.Arity != NoObject {
		t.Errorf("pray arity = %d, want NoObject", entry.Arity)
	}

	entry, _ = v.Lookup("bribe")
	if entry.Arity != DirectIndirect {
		t.Errorf("bribe arity = %d, want DirectIndirect", entry.Arity)
	}
	if !entry.Prepositions["with"] {
		t.Error("bribe should allow preposition with")
	}
}

func TestNew_CustomVerbShadowsBuiltin(t *testing.T) {
	if _, err := New([]types.VerbDef{{Verb: "take"}}); err == nil {
		t.Error("expected error for custom verb shadowing a built-in")
	}
	if _, err := New([]types.VerbDef{{Verb: "pray", Aliases: []string{"get"}}}); err == nil {
		t.Error("expected error for custom alias shadowing a built-in alias")
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		word string
		want string
		ok   bool
	}{
		{"n", "north", true},
		{"north", "north", true},
		{"u", "up", true},
		{"out", "out", true},
		{"sideways", "", false},
	}
	for _, tt := range tests {
		got, ok := Direction(tt.word)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Direction(%q) = %q, %v; want %q, %v", tt.word, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPreposition(t *testing.T) {
	tests := []struct {
		word string
		want string
		ok   bool
	}{
		{"in", "in", true},
		{"into", "in", true},
		{"using", "with", true},
		{"beneath", "under", true},
		{"around", "", false},
	}
	for _, tt := range tests {
		got, ok := Preposition(tt.word)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Preposition(%q) = %q, %v; want %q, %v", tt.word, got, ok, tt.want, tt.ok)
		}
	}
}
