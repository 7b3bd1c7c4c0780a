// Package parser implements the Top-Down Operator Precedence parser
// of spec.md §4.4: expression/statements/statement over a rewindable
// operator stream, driven by internal/optable's behavior table.
//
// Grounded on the teacher's internal/parser/parser.go and
// expressions.go for the TDOP loop shape (curToken/peekToken advance
// pattern, precedence-driven infix loop) and internal/pipeline's
// TokenStream abstraction, restructured around an explicit rewindable
// index into a materialized operator slice (spec.md §4.4: "an array of
// already-produced operators and an index") instead of the teacher's
// two-token lookahead buffer, since the spec calls for true rewind,
// not just one token of peek.
package parser

import (
	"fmt"

	"github.com/freedmand/langcore/internal/diagnostics"
	"github.com/freedmand/langcore/internal/langast"
	"github.com/freedmand/langcore/internal/langtoken"
	"github.com/freedmand/langcore/internal/lexer"
	"github.com/freedmand/langcore/internal/optable"
)

// tokenSource is the minimal lexer surface the parser consumes; kept
// as an interface so tests can feed a canned token list.
type tokenSource interface {
	Next() (langtoken.Token, error)
}

// entry pairs a produced token with the behavior bound to it.
type entry struct {
	tok langtoken.Token
	beh *optable.Behavior
}

// Parser consumes a token stream and emits *langast.Node via TDOP.
type Parser struct {
	lex   tokenSource
	table *optable.Table

	ops []entry // already-produced operators (spec.md §4.4's rewind buffer)
	idx int     // index of the next unconsumed entry in ops
}

// New builds a parser over source, using table to resolve operator
// behaviors for each token.
func New(source string, table *optable.Table) *Parser {
	return &Parser{lex: lexer.New(source), table: table}
}

// NewFromLexer builds a parser over an already-constructed lexer
// (e.g. one seeked to a substring view).
func NewFromLexer(lex tokenSource, table *optable.Table) *Parser {
	return &Parser{lex: lex, table: table}
}

// Parse runs the parser to completion, returning the top-level
// Statements node.
func (p *Parser) Parse() (*langast.Node, error) {
	stmts, err := p.statements(isEOF)
	if err != nil {
		return nil, err
	}
	return langast.Statements(nil, stmts...), nil
}

// nextOperator advances the stream by one entry, materializing a new
// one from the lexer if the rewind buffer is exhausted, and returns
// it (spec.md §4.4).
func (p *Parser) nextOperator() (entry, error) {
	if p.idx < len(p.ops) {
		e := p.ops[p.idx]
		p.idx++
		return e, nil
	}
	tok, err := p.lex.Next()
	if err != nil {
		return entry{}, err
	}
	e := entry{tok: tok, beh: p.table.Lookup(tok)}
	p.ops = append(p.ops, e)
	p.idx++
	return e, nil
}

// rewind steps the stream back one entry.
func (p *Parser) rewind() {
	if p.idx > 0 {
		p.idx--
	}
}

// peekOperator advances then rewinds, returning the next entry
// without consuming it (spec.md §4.4).
func (p *Parser) peekOperator() (entry, error) {
	e, err := p.nextOperator()
	if err != nil {
		return entry{}, err
	}
	p.rewind()
	return e, nil
}

func isEOF(tok langtoken.Token) bool { return tok.Kind == langtoken.EOF }

// --- optable.Driver implementation -----------------------------------

// Expression parses a (possibly bounded) expression at the given
// right-binding-power threshold; satisfies optable.Driver.
func (p *Parser) Expression(rbp float64, end optable.Matcher) (optable.Node, error) {
	return p.expression(rbp, end)
}

func (p *Parser) expression(rbp float64, end optable.Matcher) (*langast.Node, error) {
	first, err := p.nextOperator()
	if err != nil {
		return nil, err
	}
	if first.beh == nil || first.beh.Prefix == nil {
		return nil, p.parseErrorf(first.tok, "unexpected token %q: no prefix handler", first.tok.Text)
	}
	leftAny, err := first.beh.Prefix(p, first.tok)
	if err != nil {
		return nil, err
	}
	left := leftAny.(*langast.Node)

	for {
		peek, err := p.peekOperator()
		if err != nil {
			return nil, err
		}
		if end != nil && end(peek.tok) {
			return left, nil
		}
		lbp := 0.0
		if peek.beh != nil {
			lbp = peek.beh.LeftBindingPower
		}
		if rbp >= lbp {
			return left, nil
		}
		if peek.beh == nil || peek.beh.Infix == nil {
			return left, nil
		}
		cur, err := p.nextOperator()
		if err != nil {
			return nil, err
		}
		resultAny, err := cur.beh.Infix(p, cur.tok, left)
		if err != nil {
			return nil, err
		}
		left = resultAny.(*langast.Node)
	}
}

// ConsumeCommasUntil implements optable.Driver: the {Leading,
// AfterExpression} state machine of spec.md §4.10, distinguishing a
// bare group from a tuple by whether any comma was seen.
func (p *Parser) ConsumeCommasUntil(end optable.Matcher) (int, []optable.Node, error) {
	commas := 0
	var params []optable.Node
	afterExpr := false
	for {
		peek, err := p.peekOperator()
		if err != nil {
			return 0, nil, err
		}
		if end(peek.tok) {
			p.nextOperator()
			return commas, params, nil
		}
		if !afterExpr {
			expr, err := p.expression(0, nil)
			if err != nil {
				return 0, nil, err
			}
			params = append(params, expr)
			afterExpr = true
			continue
		}
		if peek.tok.Text != "," {
			return 0, nil, p.parseErrorf(peek.tok, "expected ',' or closing brace, got %q", peek.tok.Text)
		}
		p.nextOperator()
		commas++
		afterExpr = false
	}
}

// Statements implements optable.Driver: loops statement() until end
// matches, consuming the end token.
func (p *Parser) Statements(end optable.Matcher) ([]optable.Node, error) {
	nodes, err := p.statements(end)
	if err != nil {
		return nil, err
	}
	out := make([]optable.Node, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out, nil
}

func (p *Parser) statements(end optable.Matcher) ([]*langast.Node, error) {
	var out []*langast.Node
	for {
		p.skipNewlines()
		peek, err := p.peekOperator()
		if err != nil {
			return nil, err
		}
		if end(peek.tok) {
			p.nextOperator()
			return out, nil
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			out = append(out, stmt)
		}
	}
}

func (p *Parser) skipNewlines() {
	for {
		peek, err := p.peekOperator()
		if err != nil || peek.tok.Kind != langtoken.Newline {
			return
		}
		p.nextOperator()
	}
}

// statement parses one statement: the current operator's
// StatementHandler if it registers one, otherwise a bare expression
// (spec.md §4.4) — then requires a newline or end-of-stream and
// discards any further trailing newlines.
func (p *Parser) statement() (*langast.Node, error) {
	peek, err := p.peekOperator()
	if err != nil {
		return nil, err
	}
	var result *langast.Node
	if peek.beh != nil && peek.beh.Statement != nil {
		cur, err := p.nextOperator()
		if err != nil {
			return nil, err
		}
		res, err := cur.beh.Statement(p, cur.tok)
		if err != nil {
			return nil, err
		}
		result = res.(*langast.Node)
	} else {
		result, err = p.expression(0, nil)
		if err != nil {
			return nil, err
		}
	}

	peek, err = p.peekOperator()
	if err != nil {
		return nil, err
	}
	if peek.tok.Kind != langtoken.Newline && peek.tok.Kind != langtoken.EOF {
		return nil, p.parseErrorf(peek.tok, "expected newline or end of input, got %q", peek.tok.Text)
	}
	p.skipNewlines()
	return result, nil
}

func (p *Parser) parseErrorf(tok langtoken.Token, format string, args ...any) error {
	return diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrParse, fmt.Sprintf(format, args...), &tok)
}
