// Package lexer implements the tokenizer of spec.md §4.2: a lazy,
// restartable token stream configured by two ordered pattern lists —
// whitespace patterns (consumed and discarded) and token patterns
// (regex- or literal-backed, each carrying a kind).
//
// Grounded on the *shape* of the teacher's internal/lexer/lexer.go
// (line/column bookkeeping via readChar/peekChar, per-kind token
// construction) but restructured from its hand-written switch over
// characters into the ordered pattern-table design spec.md §4.2
// requires — no repo in the retrieval pack exercises a regex-table
// tokenizer end to end, so this is built fresh around Go's `regexp`
// (stdlib; no pack dependency offers a lexer-generator or pattern-
// table runtime — the closest, golang.org/x/tools, is a static-
// analysis toolkit, not a lexer library).
package lexer

import (
	"regexp"

	"github.com/freedmand/langcore/internal/diagnostics"
	"github.com/freedmand/langcore/internal/indexedtext"
	"github.com/freedmand/langcore/internal/langtoken"
)

// pattern is one entry of the ordered token-pattern table.
type pattern struct {
	re   *regexp.Regexp
	kind langtoken.Kind
}

// whitespacePatterns are tried in order at the current offset; the
// first match is consumed and discarded without producing a token.
// `\` immediately before `\n` is a line continuation absorbed as
// whitespace (spec.md §6); a bare run of spaces/tabs is whitespace;
// a newline followed by trailing horizontal whitespace, or `;`,
// instead becomes a Newline *token* (below) — it is not itself
// whitespace.
var whitespacePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\\\n`),
	regexp.MustCompile(`^[ \t]+`),
	regexp.MustCompile(`^#[^\n]*`), // line comment
}

// tokenPatterns are tried in order; the first match wins. Multi-
// character operators that share a prefix with a shorter one
// (`**`/`*`, `//`/`/`, `:=`/`=`) are listed longest-first so the
// longer pattern is never shadowed.
var tokenPatterns = []pattern{
	{regexp.MustCompile(`^\n[ \t]*`), langtoken.Newline},
	{regexp.MustCompile(`^;`), langtoken.Newline},
	{regexp.MustCompile(`^\.\.`), langtoken.Range},
	{regexp.MustCompile(`^\*\*`), langtoken.Operation},
	{regexp.MustCompile(`^//`), langtoken.Operation},
	{regexp.MustCompile(`^:=`), langtoken.Operation},
	{regexp.MustCompile(`^[+\-*/=]`), langtoken.Operation},
	{regexp.MustCompile(`^\(`), langtoken.Parenthesis},
	{regexp.MustCompile(`^\)`), langtoken.Parenthesis},
	{regexp.MustCompile(`^\[`), langtoken.SquareBracket},
	{regexp.MustCompile(`^\]`), langtoken.SquareBracket},
	{regexp.MustCompile(`^\{`), langtoken.CurlyBrace},
	{regexp.MustCompile(`^\}`), langtoken.CurlyBrace},
	{regexp.MustCompile(`^,`), langtoken.Operation},
	{regexp.MustCompile(`^[0-9]+\.[0-9]+`), langtoken.Float},
	{regexp.MustCompile(`^[0-9]+`), langtoken.Integer},
	{regexp.MustCompile(`^'[^']*'`), langtoken.String},
	{regexp.MustCompile(`^for\b`), langtoken.For},
	{regexp.MustCompile(`^in\b`), langtoken.In},
	{regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*'?`), langtoken.Type},
	{regexp.MustCompile(`^[a-z_][A-Za-z0-9_]*'?`), langtoken.Variable},
}

// Lexer is a restartable, lazy token stream over an IndexedText.
type Lexer struct {
	text *indexedtext.Text
	pos  int
}

// New builds a lexer over the raw source text.
func New(source string) *Lexer {
	return &Lexer{text: indexedtext.New(source)}
}

// NewFromText builds a lexer over an already-constructed IndexedText,
// preserving its offset base (used when lexing a substring view, e.g.
// an embedded sub-expression, per indexedtext.Text.Substring).
func NewFromText(text *indexedtext.Text) *Lexer {
	return &Lexer{text: text}
}

// Pos returns the current byte offset into the lexer's view, so a
// caller can rewind/restart a fresh Lexer at this point (spec.md
// §4.2's "restartable lazy sequence").
func (l *Lexer) Pos() int { return l.pos }

// Seek repositions the lexer within its current view.
func (l *Lexer) Seek(pos int) { l.pos = pos }

func (l *Lexer) skipWhitespace() {
	raw := l.text.Raw()
	for l.pos < len(raw) {
		advanced := false
		for _, re := range whitespacePatterns {
			if loc := re.FindStringIndex(raw[l.pos:]); loc != nil {
				l.pos += loc[1]
				advanced = true
				break
			}
		}
		if !advanced {
			return
		}
	}
}

// Next returns the next token, advancing past it. At end of input it
// returns an EOF token. Fails with a diagnostics.Error of phase Lexer
// if no whitespace or token pattern matches at the current offset
// (spec.md §4.2's TokenizerError).
func (l *Lexer) Next() (langtoken.Token, error) {
	l.skipWhitespace()
	raw := l.text.Raw()

	if l.pos >= len(raw) {
		line, col := l.text.LinePosition(l.text.CharOffset(l.pos))
		return langtoken.Token{Kind: langtoken.EOF, LineNumber: line, LinePosition: col, CharPosition: l.text.CharOffset(l.pos)}, nil
	}

	for _, p := range tokenPatterns {
		loc := p.re.FindStringIndex(raw[l.pos:])
		if loc == nil {
			continue
		}
		start := l.pos
		text := raw[start : start+loc[1]]
		line, col := l.text.LinePosition(l.text.CharOffset(start))
		l.pos += loc[1]
		return langtoken.Token{
			Text:         text,
			Kind:         p.kind,
			LineNumber:   line,
			LinePosition: col,
			CharPosition: l.text.CharOffset(start),
		}, nil
	}

	line, col := l.text.LinePosition(l.text.CharOffset(l.pos))
	return langtoken.Token{}, diagnostics.New(diagnostics.PhaseLexer, diagnostics.ErrTokenizer,
		"no token pattern matches input", &langtoken.Token{LineNumber: line, LinePosition: col, CharPosition: l.text.CharOffset(l.pos)})
}

// All drains the lexer into a slice of tokens, including the trailing
// EOF token. Convenience for callers (tests, the pipeline) that want a
// materialized stream instead of pulling Next() themselves.
func (l *Lexer) All() ([]langtoken.Token, error) {
	var toks []langtoken.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == langtoken.EOF {
			return toks, nil
		}
	}
}
