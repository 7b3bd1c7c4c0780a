// Package optable implements the Operator Table of spec.md §4.3: a
// registry keyed by token text or kind that produces operator
// **behaviors** data-first, per §9's suggested
// `OperatorBehavior{Value, Simple, Brace, Dummy, End}` enum.
//
// Go has no sum types, so each behavior kind is a constructor that
// fills in only the fields its kind uses; the handlers themselves are
// still plain data (closures stored on the struct) rather than method
// implementations on distinct types, which is what keeps dispatch a
// single table lookup instead of a type switch — the property §9
// asks to preserve from the teacher's closure-based
// prefixParseFns/infixParseFns maps.
//
// Grounded on the teacher's internal/parser precedence map and
// prefix/infix function-map idiom, restructured around
// internal/langconfig's data table instead of Go constants scattered
// across parser.go.
package optable

import "github.com/freedmand/langcore/internal/langtoken"

// Epsilon is subtracted from leftBindingPower on the right-recursive
// call of a right-associative Simple operator, so that equal
// precedence reassociates to the right (spec.md §4.3).
const Epsilon = 1e-5

// Kind distinguishes which shape of behavior a table entry holds.
type Kind int

const (
	KindValue Kind = iota
	KindSimple
	KindBrace
	KindDummy
	KindEnd
)

// Node stands in for *langast.Node. Handlers are generic over it so
// optable has no import on internal/langast; internal/parser is the
// only package that instantiates these signatures concretely.
type Node = any

// Matcher reports whether tok satisfies a stopping condition (an
// endMatcher in spec.md §4.4's terms).
type Matcher func(tok langtoken.Token) bool

// Driver is the thin slice of parser operations a handler needs to
// recurse back into expression parsing and brace/comma consumption
// (spec.md §4.4). Implemented by *parser.Parser.
type Driver interface {
	Expression(rbp float64, end Matcher) (Node, error)
	ConsumeCommasUntil(end Matcher) (commas int, params []Node, err error)
	Statements(end Matcher) ([]Node, error)
}

// PrefixHandler parses a prefix (nud) position: the parser has already
// consumed the token before the handler runs.
type PrefixHandler func(d Driver, tok langtoken.Token) (Node, error)

// InfixHandler parses an infix/postfix (led) position given the
// already-parsed left operand.
type InfixHandler func(d Driver, tok langtoken.Token, left Node) (Node, error)

// StatementHandler parses a full statement headed by tok. None of
// this language's built-in operators register one — assignment is an
// ordinary low-precedence infix operator (spec.md §6: "Both return
// the assigned value as expression") — but the field exists so the
// table shape matches spec.md §4.3's generic statement-level dispatch
// and Parser.statement falls back to a bare expression when it is nil.
type StatementHandler func(d Driver, tok langtoken.Token) (Node, error)

// Behavior is one operator table entry (spec.md §4.3).
type Behavior struct {
	Kind Kind

	// Symbol/Kinds select which tokens this behavior matches (Match).
	Symbol string
	Kinds  []langtoken.Kind

	LeftBindingPower float64
	RightAssociative bool

	Prefix    PrefixHandler
	Infix     InfixHandler
	Statement StatementHandler

	// Brace-only: the closing-token matcher and whether a matched
	// group introduces a new lexical block scope.
	Close           Matcher
	IntroducesScope bool
}

// Match reports whether tok is handled by this behavior: by exact
// symbol text if Symbol is set, otherwise by token kind membership.
func (b *Behavior) Match(tok langtoken.Token) bool {
	if b.Symbol != "" {
		return tok.Text == b.Symbol
	}
	for _, k := range b.Kinds {
		if tok.Kind == k {
			return true
		}
	}
	return false
}

// RightBindingPowerFor computes the right-hand-side binding power to
// recurse with for a Simple operator: lbp, or lbp-epsilon when right
// associative (spec.md §4.3).
func (b *Behavior) RightBindingPowerFor() float64 {
	if b.RightAssociative {
		return b.LeftBindingPower - Epsilon
	}
	return b.LeftBindingPower
}

// NewValue builds a Value behavior: prefix-only, emits a literal AST
// node carrying the token's own text (spec.md §4.3).
func NewValue(kinds []langtoken.Kind, ctor func(tok langtoken.Token) Node) *Behavior {
	return &Behavior{
		Kind:  KindValue,
		Kinds: kinds,
		Prefix: func(d Driver, tok langtoken.Token) (Node, error) {
			return ctor(tok), nil
		},
	}
}

// NewSimple builds a Simple behavior: infix with precedence lbp,
// optionally also usable as unary prefix at unaryLbp via unaryCtor
// (spec.md §4.3; only unary `-` uses the unary reading in this spec).
func NewSimple(symbol string, lbp float64, rightAssoc bool, infixCtor func(tok langtoken.Token, left, right Node) Node, unaryLbp float64, unaryCtor func(tok langtoken.Token, operand Node) Node) *Behavior {
	b := &Behavior{
		Kind:             KindSimple,
		Symbol:           symbol,
		LeftBindingPower: lbp,
		RightAssociative: rightAssoc,
	}
	b.Infix = func(d Driver, tok langtoken.Token, left Node) (Node, error) {
		right, err := d.Expression(b.RightBindingPowerFor(), nil)
		if err != nil {
			return nil, err
		}
		return infixCtor(tok, left, right), nil
	}
	if unaryCtor != nil {
		b.Prefix = func(d Driver, tok langtoken.Token) (Node, error) {
			operand, err := d.Expression(unaryLbp, nil)
			if err != nil {
				return nil, err
			}
			return unaryCtor(tok, operand), nil
		}
	}
	return b
}

// NewBrace builds a Brace behavior: prefix opens a group consuming
// expressions until Close matches, building a tuple via tupleCtor when
// internal commas appear (or always, if groupCtor is nil — the array
// reading) or a Group via groupCtor for a single comma-free expression
// (spec.md §4.3).
func NewBrace(symbol string, close Matcher, tupleCtor func(tok langtoken.Token, children []Node) Node, groupCtor func(tok langtoken.Token, inner Node) Node, introducesScope bool) *Behavior {
	b := &Behavior{
		Kind:            KindBrace,
		Symbol:          symbol,
		Close:           close,
		IntroducesScope: introducesScope,
	}
	b.Prefix = func(d Driver, tok langtoken.Token) (Node, error) {
		commas, params, err := d.ConsumeCommasUntil(close)
		if err != nil {
			return nil, err
		}
		if commas > 0 || groupCtor == nil || len(params) != 1 {
			return tupleCtor(tok, params), nil
		}
		return groupCtor(tok, params[0]), nil
	}
	return b
}

// NewBlock builds a Brace behavior whose body is a newline-separated
// statement sequence rather than a comma-separated expression list —
// the `{...}` reading that introduces a new block scope (spec.md
// §4.3).
func NewBlock(symbol string, close Matcher, blockCtor func(tok langtoken.Token, statements []Node) Node) *Behavior {
	b := &Behavior{Kind: KindBrace, Symbol: symbol, Close: close, IntroducesScope: true}
	b.Prefix = func(d Driver, tok langtoken.Token) (Node, error) {
		statements, err := d.Statements(close)
		if err != nil {
			return nil, err
		}
		return blockCtor(tok, statements), nil
	}
	return b
}

// NewDummy builds a Dummy behavior: occupies the table to allow
// trailing tokens (e.g. `)`, newlines) with no handler of its own.
func NewDummy(kinds []langtoken.Kind, symbol string) *Behavior {
	return &Behavior{Kind: KindDummy, Kinds: kinds, Symbol: symbol}
}

// NewEnd builds the synthetic End behavior injected when the token
// stream is exhausted: leftBindingPower 0, matches EOF.
func NewEnd() *Behavior {
	return &Behavior{Kind: KindEnd, Kinds: []langtoken.Kind{langtoken.EOF}, LeftBindingPower: 0}
}
