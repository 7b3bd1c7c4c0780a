package pipeline

import "testing"

func TestInterpretRunsSourceToValue(t *testing.T) {
	c := Interpret("1 + 2 * 3")
	if c.Failed() {
		t.Fatalf("unexpected error: %v", c.Err)
	}
	if c.Value.Data.(int64) != 7 {
		t.Fatalf("expected 7, got %v", c.Value.Data)
	}
}

func TestInterpretSurfacesParseErrors(t *testing.T) {
	c := Interpret(")")
	if !c.Failed() {
		t.Fatal("expected a parse failure for a leading closing paren")
	}
	if c.AstRoot != nil {
		t.Fatal("expected AstRoot to remain unset after a parse failure")
	}
}

func TestInterpretSurfacesSignatureErrors(t *testing.T) {
	c := Interpret("1 + 'x'")
	de, ok := c.AsDiagnostic()
	if !ok {
		t.Fatalf("expected a *diagnostics.Error, got %v", c.Err)
	}
	if len(de.Deltas) == 0 {
		t.Fatal("expected suggested substitution deltas")
	}
}

func TestTranslateLowersSourceToIR(t *testing.T) {
	c := Translate("x := 1\nx + 1")
	if c.Failed() {
		t.Fatalf("unexpected error: %v", c.Err)
	}
	if c.IRRoot == nil || c.IRScope == nil {
		t.Fatal("expected IRRoot and IRScope to be populated")
	}
}

func TestTranslateSurfacesTypeMismatch(t *testing.T) {
	c := Translate("x := 1\nx = 'str'")
	if !c.Failed() {
		t.Fatal("expected a type-mismatch failure on reassignment")
	}
}
