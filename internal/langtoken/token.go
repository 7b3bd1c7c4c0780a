// Package langtoken defines the lexical token produced by the tokenizer.
package langtoken

import "fmt"

// Kind names the lexical category of a Token.
type Kind string

const (
	Integer        Kind = "INTEGER"
	Float          Kind = "FLOAT"
	String         Kind = "STRING"
	Variable       Kind = "VARIABLE"
	Type           Kind = "TYPE"
	Operation      Kind = "OPERATION"
	Range          Kind = "RANGE"
	Newline        Kind = "NEWLINE"
	Parenthesis    Kind = "PARENTHESIS"
	CurlyBrace     Kind = "CURLY_BRACE"
	SquareBracket  Kind = "SQUARE_BRACKET"
	For            Kind = "FOR"
	In             Kind = "IN"
	EOF            Kind = "EOF"
)

// Token is an immutable lexical token carrying source coordinates.
//
// CharPosition is the zero-based offset of the token's first character
// into the IndexedText it was tokenized from (preserved across
// substring views, per indexedtext.Text.Substring).
type Token struct {
	Text         string
	Kind         Kind
	LineNumber   int
	LinePosition int
	CharPosition int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Text, t.LineNumber, t.LinePosition)
}

// Is reports whether the token's text equals s (used for matching
// literal operators like "(" or ",").
func (t Token) Is(s string) bool { return t.Text == s }
