// Package langast implements the tagged AST node of spec.md §3: a
// single generic record type carrying a name, an originating token,
// positional and named children, and a small set of boolean flags —
// rather than one Go type per syntax construct.
//
// Grounded on the teacher's internal/ast package for the *shape* of a
// node (a token for error reporting, a Visitor-style Accept hook) but
// deliberately does not follow its one-struct-per-construct design:
// spec.md §3 and §9 call for a single tagged record, and the parser
// (internal/parser) and interpreter (internal/interp) both dispatch on
// Node.Name the way the teacher's evaluator dispatches on Go type
// switches.
package langast

import (
	"strings"

	"github.com/freedmand/langcore/internal/langtoken"
)

// Flags classifies what a Node represents (spec.md §3).
type Flags uint16

const (
	FlagLiteral Flags = 1 << iota
	FlagGroup
	FlagBlock
	FlagStatements
	FlagVariable
	FlagTypeLiteral
	FlagAssign
	FlagReassign
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// Node is the tagged AST record (spec.md §3).
type Node struct {
	Name        string
	Token       *langtoken.Token
	Params      []*Node
	NamedParams map[string]int // symbolic role -> index into Params
	Flags       Flags
}

// New builds a bare node; most callers prefer one of the constructors
// below, which additionally set the relevant named-parameter roles.
func New(name string, tok *langtoken.Token, flags Flags, params ...*Node) *Node {
	return &Node{Name: name, Token: tok, Params: params, Flags: flags}
}

// withNamed binds role to the params[index] slot of n in place and
// returns n. Used by constructors to set up NamedParams lazily on first
// use.
func (n *Node) withNamed(role string, index int) *Node {
	if n.NamedParams == nil {
		n.NamedParams = map[string]int{}
	}
	n.NamedParams[role] = index
	return n
}

// Literal builds a literal AST node carrying the raw token text
// (spec.md §4.3's "Value operator").
func Literal(name string, tok *langtoken.Token) *Node {
	return New(name, tok, FlagLiteral)
}

// Variable builds a variable-reference node.
func Variable(tok *langtoken.Token) *Node {
	return New("variable", tok, FlagVariable)
}

// TypeLiteral builds a type-name reference node (an uppercase-leading
// identifier used in type position).
func TypeLiteral(tok *langtoken.Token) *Node {
	return New("type", tok, FlagTypeLiteral)
}

// Group wraps a single inner expression in parenthesization, preserving
// the distinction between `(x)` (Group) and a one-element tuple.
func Group(tok *langtoken.Token, inner *Node) *Node {
	n := New("group", tok, FlagGroup, inner)
	return n.withNamed("value", 0)
}

// Tuple builds an And-like AST node out of comma-separated expressions
// (a brace operator's multi-child reading, spec.md §4.3).
func Tuple(tok *langtoken.Token, children ...*Node) *Node {
	return New("tuple", tok, 0, children...)
}

// Array builds an array literal node from its elements.
func Array(tok *langtoken.Token, elements ...*Node) *Node {
	return New("array", tok, 0, elements...)
}

// Statements wraps a sequence of statement nodes into a block.
func Statements(tok *langtoken.Token, statements ...*Node) *Node {
	return New("statements", tok, FlagStatements, statements...)
}

// Block wraps statements produced by a brace operator that introduces
// its own scope (spec.md §4.3 "may optionally introduce a new block
// scope").
func Block(tok *langtoken.Token, body *Node) *Node {
	n := New("block", tok, FlagBlock|FlagStatements, body)
	return n.withNamed("body", 0)
}

// Assign builds a `:=` initializing-assignment node.
func Assign(tok *langtoken.Token, variable, value *Node) *Node {
	n := New(":=", tok, FlagAssign, variable, value)
	n.withNamed("variable", 0)
	return n.withNamed("value", 1)
}

// AssignTyped builds a `:=` assignment that also carries an explicit
// declared type (spec.md §8 scenario 7's "a Float := 2" form): the
// interpreter and IR translator check the value's type against it.
func AssignTyped(tok *langtoken.Token, variable, declaredType, value *Node) *Node {
	n := New(":=", tok, FlagAssign, variable, declaredType, value)
	n.withNamed("variable", 0)
	n.withNamed("type", 1)
	return n.withNamed("value", 2)
}

// TypedVariable pairs a variable with a trailing declared type token
// (e.g. the "Float" in "a Float := 2"). It exists only transiently
// during parsing: the `:=`/`=` infix handler that follows consumes it
// and rebuilds an AssignTyped node, so it never survives into a
// finished tree.
func TypedVariable(tok *langtoken.Token, variable, declaredType *Node) *Node {
	n := New("typed-variable", tok, 0, variable, declaredType)
	n.withNamed("variable", 0)
	return n.withNamed("type", 1)
}

// Reassign builds an `=` reassignment node.
func Reassign(tok *langtoken.Token, variable, value *Node) *Node {
	n := New("=", tok, FlagReassign, variable, value)
	n.withNamed("variable", 0)
	return n.withNamed("value", 1)
}

// Binary builds an infix operator application node (e.g. `+`, `*`,
// `..`), named after the operator symbol so the interpreter and IR
// translator can dispatch directly on Name.
func Binary(name string, tok *langtoken.Token, left, right *Node) *Node {
	n := New(name, tok, 0, left, right)
	n.withNamed("left", 0)
	return n.withNamed("right", 1)
}

// Unary builds a prefix operator application node (e.g. unary `-`).
func Unary(name string, tok *langtoken.Token, operand *Node) *Node {
	n := New(name, tok, 0, operand)
	return n.withNamed("value", 0)
}

// Range builds a `..` range node with explicit from/to roles.
func Range(tok *langtoken.Token, from, to *Node) *Node {
	n := New("range", tok, 0, from, to)
	n.withNamed("from", 0)
	return n.withNamed("to", 1)
}

// Get retrieves the child bound to a named role, or nil if unset.
func (n *Node) Get(role string) *Node {
	if n == nil || n.NamedParams == nil {
		return nil
	}
	idx, ok := n.NamedParams[role]
	if !ok || idx >= len(n.Params) {
		return nil
	}
	return n.Params[idx]
}

// TokenLiteral returns the originating token's text, or "" if none.
func (n *Node) TokenLiteral() string {
	if n == nil || n.Token == nil {
		return ""
	}
	return n.Token.Text
}

// String renders a canonical form of the node, sufficient to satisfy
// the round-trip invariant of spec.md §8: retokenizing and reparsing
// the rendered string reproduces an equal AST shape (ignoring
// whitespace).
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	switch {
	case n.Flags.Has(FlagLiteral), n.Flags.Has(FlagVariable), n.Flags.Has(FlagTypeLiteral):
		return n.TokenLiteral()
	case n.Flags.Has(FlagGroup):
		return "(" + n.Get("value").String() + ")"
	case n.Flags.Has(FlagBlock):
		return "{\n" + n.Get("body").String() + "\n}"
	case n.Flags.Has(FlagStatements):
		parts := make([]string, len(n.Params))
		for i, p := range n.Params {
			parts[i] = p.String()
		}
		return strings.Join(parts, "\n")
	case n.Flags.Has(FlagAssign):
		if t := n.Get("type"); t != nil {
			return n.Get("variable").String() + " " + t.String() + " := " + n.Get("value").String()
		}
		return n.Get("variable").String() + " := " + n.Get("value").String()
	case n.Flags.Has(FlagReassign):
		return n.Get("variable").String() + " = " + n.Get("value").String()
	case n.Name == "typed-variable":
		return n.Get("variable").String() + " " + n.Get("type").String()
	case n.Name == "range":
		return n.Get("from").String() + ".." + n.Get("to").String()
	case n.Name == "tuple":
		if len(n.Params) == 1 {
			return "(" + n.Params[0].String() + ",)"
		}
		return "(" + joinChildren(n.Params, ",") + ")"
	case n.Name == "array":
		return "[" + joinChildren(n.Params, ",") + "]"
	case len(n.Params) == 2 && n.NamedParams["left"] == 0 && n.NamedParams["right"] == 1:
		return n.Params[0].String() + n.Name + n.Params[1].String()
	case len(n.Params) == 1:
		return n.Name + n.Params[0].String()
	default:
		return n.Name + "(" + joinChildren(n.Params, ",") + ")"
	}
}

func joinChildren(nodes []*Node, sep string) string {
	parts := make([]string, len(nodes))
	for i, p := range nodes {
		parts[i] = p.String()
	}
	return strings.Join(parts, sep)
}
