package optable

import (
	"testing"

	"github.com/freedmand/langcore/internal/langtoken"
)

func TestLookupFindsArithmeticOperators(t *testing.T) {
	tbl := New()
	plus := tbl.Lookup(langtoken.Token{Text: "+", Kind: langtoken.Operation})
	if plus == nil || plus.Kind != KindSimple {
		t.Fatalf("expected + to be a Simple behavior, got %+v", plus)
	}
	if plus.LeftBindingPower <= 0 {
		t.Errorf("+ should have a positive binding power, got %v", plus.LeftBindingPower)
	}
}

func TestMinusHasBothInfixAndUnaryReadings(t *testing.T) {
	tbl := New()
	minus := tbl.Lookup(langtoken.Token{Text: "-", Kind: langtoken.Operation})
	if minus == nil || minus.Infix == nil || minus.Prefix == nil {
		t.Fatal("- must register both an infix and a unary-prefix handler")
	}
}

func TestPowerIsRightAssociative(t *testing.T) {
	tbl := New()
	pow := tbl.Lookup(langtoken.Token{Text: "**", Kind: langtoken.Operation})
	if pow == nil || !pow.RightAssociative {
		t.Fatal("** must be right-associative")
	}
	if pow.RightBindingPowerFor() >= pow.LeftBindingPower {
		t.Error("right-associative operator's recursive rbp must be strictly less than its own lbp")
	}
}

func TestAssignAndReassignAreDistinctPrecedences(t *testing.T) {
	tbl := New()
	colonEq := tbl.Lookup(langtoken.Token{Text: ":=", Kind: langtoken.Operation})
	eq := tbl.Lookup(langtoken.Token{Text: "=", Kind: langtoken.Operation})
	if colonEq == nil || eq == nil {
		t.Fatal(":= and = must both be registered")
	}
	if colonEq.LeftBindingPower >= eq.LeftBindingPower {
		t.Errorf(":= (%v) should bind looser than = (%v) per spec.md §6", colonEq.LeftBindingPower, eq.LeftBindingPower)
	}
}

func TestValueOperatorsMatchByKindNotText(t *testing.T) {
	tbl := New()
	intTok := langtoken.Token{Text: "42", Kind: langtoken.Integer}
	b := tbl.Lookup(intTok)
	if b == nil || b.Kind != KindValue {
		t.Fatal("an integer token should resolve to a Value behavior")
	}
}

func TestBraceOperatorsRegistered(t *testing.T) {
	tbl := New()
	paren := tbl.Lookup(langtoken.Token{Text: "(", Kind: langtoken.Parenthesis})
	bracket := tbl.Lookup(langtoken.Token{Text: "[", Kind: langtoken.SquareBracket})
	curly := tbl.Lookup(langtoken.Token{Text: "{", Kind: langtoken.CurlyBrace})
	if paren == nil || bracket == nil || curly == nil {
		t.Fatal("(, [, and { must each register a Brace behavior")
	}
	if curly.IntroducesScope != true {
		t.Error("{ must introduce a new block scope")
	}
	if paren.IntroducesScope {
		t.Error("( must not introduce a new block scope")
	}
}

func TestEndBehaviorMatchesEOF(t *testing.T) {
	tbl := New()
	end := tbl.Lookup(langtoken.Token{Kind: langtoken.EOF})
	if end == nil || end.Kind != KindEnd || end.LeftBindingPower != 0 {
		t.Fatal("EOF must resolve to the synthetic End behavior with lbp 0")
	}
}
