package interp

import (
	"testing"

	"github.com/freedmand/langcore/internal/diagnostics"
	"github.com/freedmand/langcore/internal/optable"
	"github.com/freedmand/langcore/internal/parser"
	"github.com/freedmand/langcore/internal/typetable"
)

func eval(t *testing.T, source string) typetable.Value {
	t.Helper()
	p := parser.New(source, optable.New())
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	ip := New()
	val, _, err := ip.Interpret(prog, NewState())
	if err != nil {
		t.Fatalf("interpret %q: %v", source, err)
	}
	return val
}

func evalErr(t *testing.T, source string) error {
	t.Helper()
	p := parser.New(source, optable.New())
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	ip := New()
	_, _, err = ip.Interpret(prog, NewState())
	if err == nil {
		t.Fatalf("expected an interpretation error for %q", source)
	}
	return err
}

func TestLiteralIntegerEvaluatesToItself(t *testing.T) {
	v := eval(t, "42")
	if v.Data.(int64) != 42 {
		t.Fatalf("expected 42, got %v", v.Data)
	}
}

func TestArithmeticExpressionEvaluatesWithPrecedence(t *testing.T) {
	v := eval(t, "1 + 2 * 3")
	if v.Data.(int64) != 7 {
		t.Fatalf("expected 7, got %v", v.Data)
	}
}

func TestUnaryMinusDispatchesToUnaryOverload(t *testing.T) {
	v := eval(t, "-5 + 2")
	if v.Data.(int64) != -3 {
		t.Fatalf("expected -3, got %v", v.Data)
	}
}

func TestAssignBindsAndVariableLooksUp(t *testing.T) {
	v := eval(t, "x := 3\nx + 1")
	if v.Data.(int64) != 4 {
		t.Fatalf("expected 4, got %v", v.Data)
	}
}

func TestReassignUpdatesExistingBinding(t *testing.T) {
	v := eval(t, "x := 1\nx = 2\nx")
	if v.Data.(int64) != 2 {
		t.Fatalf("expected 2, got %v", v.Data)
	}
}

func TestReassignWithMismatchedTypeFails(t *testing.T) {
	err := evalErr(t, "x := 1\nx = 'str'")
	de, ok := err.(*diagnostics.Error)
	if !ok || de.Code != diagnostics.ErrTypeMismatch {
		t.Fatalf("expected a TYPE_MISMATCH error, got %v", err)
	}
}

func TestUndefinedVariableFailsWithScopeNotFound(t *testing.T) {
	err := evalErr(t, "y")
	de, ok := err.(*diagnostics.Error)
	if !ok || de.Code != diagnostics.ErrScopeNotFound {
		t.Fatalf("expected SCOPE_NOT_FOUND, got %v", err)
	}
}

func TestBlockIntroducesChildScopeNotVisibleOutside(t *testing.T) {
	err := evalErr(t, "{\nx := 1\n}\nx")
	de, ok := err.(*diagnostics.Error)
	if !ok || de.Code != diagnostics.ErrScopeNotFound {
		t.Fatalf("expected the block-local binding to be invisible outside, got %v", err)
	}
}

func TestIntegerDivProducesFractionValue(t *testing.T) {
	v := eval(t, "1 / 3")
	if v.Type.String() != "Fraction" {
		t.Fatalf("expected Fraction type, got %s", v.Type)
	}
}

func TestIntegerFloorDivProducesIntValue(t *testing.T) {
	v := eval(t, "7 // 2")
	if v.Type.String() != "Int" || v.Data.(int64) != 3 {
		t.Fatalf("expected Int(3), got %s(%v)", v.Type, v.Data)
	}
}

func TestExponentiationIsRightAssociative(t *testing.T) {
	v := eval(t, "2**2**3")
	if v.Data.(int64) != 256 {
		t.Fatalf("expected 256, got %v", v.Data)
	}
}

func TestTypedAssignMatchingDeclaredTypeSucceeds(t *testing.T) {
	v := eval(t, "a Float := 2.0")
	if v.Type.String() != "Float" {
		t.Fatalf("expected Float, got %s", v.Type)
	}
}

func TestTypedAssignMismatchedDeclaredTypeFails(t *testing.T) {
	err := evalErr(t, "a Float := 2")
	de, ok := err.(*diagnostics.Error)
	if !ok || de.Code != diagnostics.ErrTypeMismatch {
		t.Fatalf("expected a TYPE_MISMATCH error, got %v", err)
	}
}

func TestArrayLiteralTypesAsElementUnion(t *testing.T) {
	v := eval(t, "[2, 3.0]")
	if v.Type.String() != "[Int|Float]" {
		t.Fatalf("expected [Int|Float], got %s", v.Type)
	}
	elements, ok := v.Data.([]typetable.Value)
	if !ok || len(elements) != 2 {
		t.Fatalf("expected 2 evaluated elements, got %+v", v.Data)
	}
	if elements[0].Data.(int64) != 2 {
		t.Fatalf("expected first element 2, got %v", elements[0].Data)
	}
}

func TestTupleLiteralTypesAsAnd(t *testing.T) {
	v := eval(t, "(1, 'x')")
	if v.Type.String() != "Int,String" {
		t.Fatalf("expected Int,String, got %s", v.Type)
	}
}

func TestRangeProducesAnIntArray(t *testing.T) {
	v := eval(t, "1..3")
	if v.Type.String() != "[Int]" {
		t.Fatalf("expected [Int], got %s", v.Type)
	}
	elements, ok := v.Data.([]typetable.Value)
	if !ok || len(elements) != 3 {
		t.Fatalf("expected 3 elements, got %+v", v.Data)
	}
	if elements[0].Data.(int64) != 1 || elements[2].Data.(int64) != 3 {
		t.Fatalf("expected 1,2,3, got %v,%v,%v", elements[0].Data, elements[1].Data, elements[2].Data)
	}
}

func TestDescendingRangeCountsDown(t *testing.T) {
	v := eval(t, "3..1")
	elements := v.Data.([]typetable.Value)
	if len(elements) != 3 || elements[0].Data.(int64) != 3 || elements[2].Data.(int64) != 1 {
		t.Fatalf("expected 3,2,1, got %+v", elements)
	}
}

func TestStringConcatenation(t *testing.T) {
	v := eval(t, "'foo' + 'bar'")
	if v.Data.(string) != "foobar" {
		t.Fatalf("expected 'foobar', got %q", v.Data)
	}
}

func TestSignatureErrorSuggestsIntToStringSubstitution(t *testing.T) {
	err := evalErr(t, "1 + 'x'")
	de, ok := err.(*diagnostics.Error)
	if !ok || de.Code != diagnostics.ErrSignature {
		t.Fatalf("expected a SIGNATURE error, got %v", err)
	}
	if len(de.Deltas) == 0 {
		t.Fatalf("expected at least one suggested substitution, got none")
	}
	if de.Deltas[0].Replacement != "'1'" {
		t.Fatalf("expected the Int operand quoted as '1', got %q", de.Deltas[0].Replacement)
	}
}
