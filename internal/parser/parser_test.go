package parser

import (
	"testing"

	"github.com/freedmand/langcore/internal/langast"
	"github.com/freedmand/langcore/internal/optable"
)

func parse(t *testing.T, source string) *langast.Node {
	t.Helper()
	p := New(source, optable.New())
	node, err := p.Parse()
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	return node
}

func single(t *testing.T, source string) *langast.Node {
	t.Helper()
	prog := parse(t, source)
	if len(prog.Params) != 1 {
		t.Fatalf("expected exactly one statement in %q, got %d", source, len(prog.Params))
	}
	return prog.Params[0]
}

func TestAdditivePrecedenceBindsLooserThanMultiplicative(t *testing.T) {
	n := single(t, "1 + 2 * 3")
	if n.Name != "+" {
		t.Fatalf("top-level node should be '+', got %q", n.Name)
	}
	right := n.Get("right")
	if right.Name != "*" {
		t.Fatalf("right operand of '+' should be '*', got %q", right.Name)
	}
}

func TestPowerIsRightAssociative(t *testing.T) {
	// 2 ** 3 ** 2 should parse as 2 ** (3 ** 2), not (2 ** 3) ** 2.
	n := single(t, "2 ** 3 ** 2")
	if n.Name != "**" {
		t.Fatalf("top-level node should be '**', got %q", n.Name)
	}
	left := n.Get("left")
	if left.Name != "integer" {
		t.Fatalf("left operand of the outer '**' should be the literal 2, got %q", left.Name)
	}
	right := n.Get("right")
	if right.Name != "**" {
		t.Fatalf("right operand should itself be '**' (right-associative), got %q", right.Name)
	}
}

func TestUnaryMinusBindsTighterThanMultiplication(t *testing.T) {
	n := single(t, "-1 * 2")
	if n.Name != "*" {
		t.Fatalf("top-level node should be '*', got %q", n.Name)
	}
	left := n.Get("left")
	if left.Name != "-" || len(left.Params) != 1 {
		t.Fatalf("left operand should be unary '-', got %+v", left)
	}
}

func TestGroupVsTupleDistinction(t *testing.T) {
	group := single(t, "(1 + 2)")
	if group.Name != "group" {
		t.Fatalf("expected a group node, got %q", group.Name)
	}

	tuple := single(t, "(1, 2)")
	if tuple.Name != "tuple" || len(tuple.Params) != 2 {
		t.Fatalf("expected a 2-element tuple, got %+v", tuple)
	}

	singleElemTuple := single(t, "(1,)")
	if singleElemTuple.Name != "tuple" || len(singleElemTuple.Params) != 1 {
		t.Fatalf("expected a 1-element tuple for trailing comma, got %+v", singleElemTuple)
	}

	empty := single(t, "()")
	if empty.Name != "tuple" || len(empty.Params) != 0 {
		t.Fatalf("expected an empty tuple, got %+v", empty)
	}
}

func TestArrayLiteral(t *testing.T) {
	n := single(t, "[1, 2, 3]")
	if n.Name != "array" || len(n.Params) != 3 {
		t.Fatalf("expected a 3-element array, got %+v", n)
	}
}

func TestAssignVsReassign(t *testing.T) {
	assign := single(t, "x := 1")
	if !assign.Flags.Has(langast.FlagAssign) {
		t.Fatal("expected FlagAssign")
	}
	reassign := single(t, "x = 1")
	if !reassign.Flags.Has(langast.FlagReassign) {
		t.Fatal("expected FlagReassign")
	}
}

func TestTypedAssignParsesDeclaredType(t *testing.T) {
	n := single(t, "a Float := 2")
	if !n.Flags.Has(langast.FlagAssign) {
		t.Fatalf("expected FlagAssign, got %+v", n)
	}
	typ := n.Get("type")
	if typ == nil || typ.TokenLiteral() != "Float" {
		t.Fatalf("expected a declared type %q, got %+v", "Float", typ)
	}
	if n.Get("variable").TokenLiteral() != "a" {
		t.Fatalf("expected variable %q, got %+v", "a", n.Get("variable"))
	}
	if n.Get("value").TokenLiteral() != "2" {
		t.Fatalf("expected value %q, got %+v", "2", n.Get("value"))
	}
}

func TestTypedReassignIsRejected(t *testing.T) {
	p := New("a Float = 2", optable.New())
	if _, err := p.Parse(); err == nil {
		t.Error("expected a ParseError for a type-annotated reassignment")
	}
}

func TestBlockIntroducesStatementsNode(t *testing.T) {
	n := single(t, "{\nx := 1\ny := 2\n}")
	if n.Name != "block" || !n.Flags.Has(langast.FlagBlock) {
		t.Fatalf("expected a block node, got %+v", n)
	}
	body := n.Get("body")
	if body == nil || len(body.Params) != 2 {
		t.Fatalf("expected 2 statements in block body, got %+v", body)
	}
}

func TestRangeOperatorParses(t *testing.T) {
	n := single(t, "1..5")
	if n.Name != "range" {
		t.Fatalf("expected range node, got %q", n.Name)
	}
	if n.Get("from").TokenLiteral() != "1" || n.Get("to").TokenLiteral() != "5" {
		t.Fatalf("range endpoints not wired through named params: %+v", n)
	}
}

func TestMultipleStatementsSeparatedByNewline(t *testing.T) {
	prog := parse(t, "1\n2\n3")
	if len(prog.Params) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(prog.Params))
	}
}

func TestUnexpectedTokenIsParseError(t *testing.T) {
	p := New(")", optable.New())
	if _, err := p.Parse(); err == nil {
		t.Error("expected a ParseError for a leading closing paren")
	}
}
