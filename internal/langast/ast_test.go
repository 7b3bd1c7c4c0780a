package langast

import (
	"testing"

	"github.com/freedmand/langcore/internal/langtoken"
)

func tok(text string, kind langtoken.Kind) *langtoken.Token {
	return &langtoken.Token{Text: text, Kind: kind}
}

func TestLiteralStringRoundTrips(t *testing.T) {
	n := Literal("integer", tok("42", langtoken.Integer))
	if got := n.String(); got != "42" {
		t.Errorf("String() = %q; want %q", got, "42")
	}
}

func TestBinaryStringsAsInfix(t *testing.T) {
	left := Literal("integer", tok("1", langtoken.Integer))
	right := Literal("integer", tok("2", langtoken.Integer))
	n := Binary("+", tok("+", langtoken.Operation), left, right)
	if got, want := n.String(), "1+2"; got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}
	if n.Get("left") != left || n.Get("right") != right {
		t.Error("named params did not round-trip to the original children")
	}
}

func TestAssignVsReassignFlags(t *testing.T) {
	v := Variable(tok("x", langtoken.Variable))
	val := Literal("integer", tok("1", langtoken.Integer))

	a := Assign(tok(":=", langtoken.Operation), v, val)
	if !a.Flags.Has(FlagAssign) || a.Flags.Has(FlagReassign) {
		t.Error("Assign must set FlagAssign only")
	}
	if got, want := a.String(), "x := 1"; got != want {
		t.Errorf("Assign.String() = %q; want %q", got, want)
	}

	r := Reassign(tok("=", langtoken.Operation), v, val)
	if !r.Flags.Has(FlagReassign) || r.Flags.Has(FlagAssign) {
		t.Error("Reassign must set FlagReassign only")
	}
}

func TestGroupPreservesCardinalityDistinctFromTuple(t *testing.T) {
	x := Literal("integer", tok("1", langtoken.Integer))
	group := Group(tok("(", langtoken.Parenthesis), x)
	tuple := Tuple(tok("(", langtoken.Parenthesis), x)
	if group.String() == tuple.String() {
		t.Errorf("Group(1) and Tuple(1) must render distinctly, both gave %q", group.String())
	}
}

func TestStatementsJoinsChildrenWithNewlines(t *testing.T) {
	a := Literal("integer", tok("1", langtoken.Integer))
	b := Literal("integer", tok("2", langtoken.Integer))
	s := Statements(tok("", langtoken.Newline), a, b)
	if got, want := s.String(), "1\n2"; got != want {
		t.Errorf("Statements.String() = %q; want %q", got, want)
	}
}

func TestGetOnUnsetRoleReturnsNil(t *testing.T) {
	n := Literal("integer", tok("1", langtoken.Integer))
	if n.Get("missing") != nil {
		t.Error("Get on an unset role should return nil")
	}
}
