// Package lexer splits raw player input into normalized tokens.
// Intentionally dumb: it never rejects input except when it is blank;
// unrecognized characters pass through as Word tokens for the parser.
package lexer

import (
	"errors"
	"strings"
)

// ErrEmptyInput is returned for whitespace-only input.
var ErrEmptyInput = errors.New("empty input")

// Kind classifies a token.
type Kind int

const (
	Word Kind = iota
	// Article marks a/an/the. Articles stay in the stream so the parser
	// can skip them positionally rather than the lexer guessing.
	Article
	// Quoted marks a span that was wrapped in quotes, kept intact for
	// object names with embedded spaces.
	Quoted
)

// Token is a single unit of lexer output.
type Token struct {
	Kind     Kind
	Value    string // normalized (lowercased) form
	Original string // form before normalization
}

var articles = map[string]bool{
	"a": true, "an": true, "the": true,
}

// Common contractions expanded before splitting, so "can't open" lexes
// the same as "cannot open".
var contractions = map[string]string{
	"don't":   "do not",
	"doesn't": "does not",
	"can't":   "cannot",
	"won't":   "will not",
	"it's":    "it is",
	"that's":  "that is",
	"what's":  "what is",
	"where's": "where is",
}

// Tokenize converts raw input into tokens. It lowercases everything,
// expands contractions, drops trailing periods, and keeps quoted spans
// as single Quoted tokens.
func Tokenize(input string) ([]Token, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, ErrEmptyInput
	}

	lower := strings.ToLower(trimmed)
	for contraction, expansion := range contractions {
		lower = strings.ReplaceAll(lower, contraction, expansion)
	}

	var tokens []Token
	fields := splitQuoted(lower)
	for _, f := range fields {
		if f.quoted {
			tokens = append(tokens, Token{Kind: Quoted, Value: f.text, Original: f.text})
			continue
		}
		word := strings.TrimSuffix(f.text, ".")
		word = strings.Trim(word, ",")
		if word == "" {
			continue
		}
		if articles[word] {
			tokens = append(tokens, Token{Kind: Article, Value: word, Original: f.text})
			continue
		}
		tokens = append(tokens, Token{Kind: Word, Value: word, Original: f.text})
	}

	if len(tokens) == 0 {
		return nil, ErrEmptyInput
	}
	return tokens, nil
}

// Words returns the values of all non-article tokens.
func Words(tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != Article {
			out = append(out, t.Value)
		}
	}
	return out
}

type field struct {
	text   string
	quoted bool
}

// splitQuoted splits on whitespace while keeping single- or double-quoted
// spans together. An unterminated quote runs to the end of input.
func splitQuoted(s string) []field {
	var fields []field
	var b strings.Builder
	var quote byte

	flush := func(quoted bool) {
		if b.Len() > 0 {
			fields = append(fields, field{text: b.String(), quoted: quoted})
			b.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				flush(true)
				quote = 0
			} else {
				b.WriteByte(c)
			}
		case (c == '"' || c == '\'') && b.Len() == 0:
			// A quote only opens a span at a word boundary; an apostrophe
			// inside a word stays part of the word.
			quote = c
		case c == ' ' || c == '\t':
			flush(false)
		default:
			b.WriteByte(c)
		}
	}
	flush(quote != 0)
	return fields
}
