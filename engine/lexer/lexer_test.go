package lexer

import (
	"errors"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "simple command",
			input: "take lamp",
			want: []Token{
				{Kind: Word, Value: "take", Original: "take"},
				{Kind: Word, Value: "lamp", Original: "lamp"},
			},
		},
		{
			name:  "case folding",
			input: "TAKE LAMP",
			want: []Token{
				{Kind: Word, Value: "take", Original: "take"},
				{Kind: Word, Value: "lamp", Original: "lamp"},
			},
		},
		{
			name:  "articles are flagged, not dropped",
			input: "take the brass key",
			want: []Token{
				{Kind: Word, Value: "take", Original: "take"},
				{Kind: Article, Value: "the", Original: "the"},
				{Kind: Word, Value: "brass", Original: "brass"},
				{Kind: Word, Value: "key", Original: "key"},
			},
		},
		{
			name:  "quoted span kept intact",
			input: `examine "ancient stone tablet"`,
			want: []Token{
				{Kind: Word, Value: "examine", Original: "examine"},
				{Kind: Quoted, Value: "ancient stone tablet", Original: "ancient stone tablet"},
			},
		},
		{
			name:  "trailing period skipped",
			input: "look.",
			want: []Token{
				{Kind: Word, Value: "look", Original: "look."},
			},
		},
		{
			name:  "contraction expansion",
			input: "can't open",
			want: []Token{
				{Kind: Word, Value: "cannot", Original: "cannot"},
				{Kind: Word, Value: "open", Original: "open"},
			},
		},
		{
			name:  "apostrophe inside a word survives",
			input: "examine guard's sword",
			want: []Token{
				{Kind: Word, Value: "examine", Original: "examine"},
				{Kind: Word, Value: "guard's", Original: "guard's"},
				{Kind: Word, Value: "sword", Original: "sword"},
			},
		},
		{
			name:  "unrecognized characters pass through",
			input: "take @#$",
			want: []Token{
				{Kind: Word, Value: "take", Original: "take"},
				{Kind: Word, Value: "@#$", Original: "@#$"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenize_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		if _, err := Tokenize(input); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Tokenize(%q) error = %v, want ErrEmptyInput", input, err)
		}
	}
}

func TestWords(t *testing.T) {
	tokens, err := Tokenize("put the key in an old box")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"put", "key", "in", "old", "box"}
	if got := Words(tokens); !reflect.DeepEqual(got, want) {
		t.Errorf("Words() = %v, want %v", got, want)
	}
}
