// Package parser consumes lexer tokens against the vocabulary to produce
// a Command. It implements the grammar
//
//	COMMAND := VERB [ARTICLE]* [ADJ]* NOUN [PREP [ARTICLE]* [ADJ]* NOUN]
//
// No part-of-speech dictionary exists: the last unclaimed word of a phrase
// is the noun, everything before it adjectives, and the first recognized
// preposition splits direct from indirect. Parsing never mutates state.
package parser

import (
	"fmt"
	"strings"

	"github.com/nathoo/textquest/engine/lexer"
	"github.com/nathoo/textquest/engine/vocab"
	"github.com/nathoo/textquest/types"
)

// UnknownVerbError indicates the leading word is not a recognized verb.
type UnknownVerbError struct {
	Word string
}

func (e *UnknownVerbError) Error() string {
	return "I don't understand that."
}

// MissingObjectError indicates the verb (or preposition) needs an object
// phrase that was not supplied.
type MissingObjectError struct {
	What string // verb or preposition awaiting an object
}

func (e *MissingObjectError) Error() string {
	return capitalize(e.What) + " what?"
}

// UnexpectedPrepositionError indicates a preposition was found but the
// verb does not accept an indirect object.
type UnexpectedPrepositionError struct {
	Verb        string
	Preposition string
}

func (e *UnexpectedPrepositionError) Error() string {
	return fmt.Sprintf("You can't %s something %s something.", e.Verb, e.Preposition)
}

// UnknownDirectionError indicates GO was given a word that is not a
// direction.
type UnknownDirectionError struct {
	Word string
}

func (e *UnknownDirectionError) Error() string {
	return fmt.Sprintf("I don't know how to go %q.", e.Word)
}

// Parse converts raw input into a Command using the given vocabulary.
// Movement input (bare directions, "go north") normalizes to verb "go"
// with the canonical direction as its direct phrase.
func Parse(input string, v *vocab.Vocabulary) (*types.Command, error) {
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		return nil, err
	}

	raw := strings.TrimSpace(input)
	first := tokens[0].Value

	// Bare direction: "n", "north", "out".
	if dir, ok := vocab.Direction(first); ok && len(meaningful(tokens)) == 1 {
		return &types.Command{Verb: "go", Direct: phrase([]lexer.Token{{Kind: lexer.Word, Value: dir}}), Raw: raw}, nil
	}

	// Multi-word verb aliases ("pick up", "look at") before single-word.
	var entry *vocab.Entry
	rest := tokens[1:]
	if len(tokens) >= 2 && tokens[1].Kind == lexer.Word {
		if e, ok := v.LookupMulti(first, tokens[1].Value); ok {
			entry = e
			rest = tokens[2:]
		}
	}
	if entry == nil {
		e, ok := v.Lookup(first)
		if !ok {
			return nil, &UnknownVerbError{Word: first}
		}
		entry = e
	}

	// GO <direction>.
	if entry.Verb == "go" {
		words := lexer.Words(rest)
		if len(words) == 0 {
			return nil, &MissingObjectError{What: "go"}
		}
		dir, ok := vocab.Direction(words[0])
		if !ok {
			return nil, &UnknownDirectionError{Word: words[0]}
		}
		return &types.Command{Verb: "go", Direct: phrase([]lexer.Token{{Kind: lexer.Word, Value: dir}}), Raw: raw}, nil
	}

	rest = stripArticles(rest)

	if len(rest) == 0 {
		if entry.RequiresObject {
			return nil, &MissingObjectError{What: entry.Verb}
		}
		return &types.Command{Verb: entry.Verb, Raw: raw}, nil
	}

	// LOOK with an object is a grammar-level synonym for EXAMINE.
	verb := entry.Verb
	if verb == "look" {
		if e, ok := v.Entry("examine"); ok {
			entry, verb = e, "examine"
		}
	}

	// Split on the first recognized preposition.
	prepIdx, prep := -1, ""
	for i, tok := range rest {
		if tok.Kind != lexer.Word {
			continue
		}
		p, ok := vocab.Preposition(tok.Value)
		if !ok {
			continue
		}
		if entry.Arity != vocab.DirectIndirect {
			return nil, &UnexpectedPrepositionError{Verb: verb, Preposition: p}
		}
		if entry.Prepositions != nil && !entry.Prepositions[p] {
			continue // not valid for this verb; leave it in the phrase
		}
		prepIdx, prep = i, p
		break
	}

	if prepIdx < 0 {
		return &types.Command{Verb: verb, Direct: phrase(rest), Raw: raw}, nil
	}

	direct := rest[:prepIdx]
	indirect := rest[prepIdx+1:]
	if len(direct) == 0 {
		return nil, &MissingObjectError{What: verb}
	}
	if len(indirect) == 0 {
		return nil, &MissingObjectError{What: prep}
	}

	return &types.Command{
		Verb:        verb,
		Direct:      phrase(direct),
		Preposition: prep,
		Indirect:    phrase(indirect),
		Raw:         raw,
	}, nil
}

// phrase builds a NounPhrase from non-article tokens. Quoted tokens stay
// atomic so multi-word names match as a unit.
func phrase(tokens []lexer.Token) *types.NounPhrase {
	words := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == lexer.Article {
			continue
		}
		words = append(words, t.Value)
	}
	return &types.NounPhrase{Words: words, Raw: strings.Join(words, " ")}
}

func stripArticles(tokens []lexer.Token) []lexer.Token {
	out := make([]lexer.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != lexer.Article {
			out = append(out, t)
		}
	}
	return out
}

func meaningful(tokens []lexer.Token) []lexer.Token {
	return stripArticles(tokens)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
