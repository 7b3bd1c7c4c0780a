package langscope

import "testing"

func TestInitializeRejectsDuplicateLocal(t *testing.T) {
	s := New()
	if _, err := s.Initialize("a", Item{Value: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Initialize("a", Item{Value: 2}); err == nil {
		t.Fatal("expected AlreadyDefined error")
	}
}

func TestInitializeRejectsReservedOnChain(t *testing.T) {
	root := New()
	if _, err := root.Initialize("Int", Item{Reserved: true, IsType: true}); err != nil {
		t.Fatal(err)
	}
	child := root.Push()
	if _, err := child.Initialize("Int", Item{Value: 5}); err == nil {
		t.Fatal("expected Reserved error when shadowing a reserved name")
	}
}

func TestSetWalksToNearestEnclosingBinding(t *testing.T) {
	root := New()
	root.Initialize("a", Item{Value: 2})
	child := root.Push()
	if err := child.Set("a", 3); err != nil {
		t.Fatal(err)
	}
	it, _ := root.Get("a")
	if it.Value != 3 {
		t.Errorf("root's a = %v; want 3 (reassign should update the enclosing binding)", it.Value)
	}
}

// Scenario from spec.md §8.6: a := 2; { a := 3 } leaves the outer
// scope's 'a' untouched because ':=' always initializes a *new*
// binding in the current (innermost) scope.
func TestNestedShadowingDoesNotAffectOuter(t *testing.T) {
	root := New()
	root.Initialize("a", Item{Value: 2})
	child := root.Push()
	child.Initialize("a", Item{Value: 3})
	it, _ := root.Get("a")
	if it.Value != 2 {
		t.Errorf("outer a = %v; want 2", it.Value)
	}
	childIt, _ := child.Get("a")
	if childIt.Value != 3 {
		t.Errorf("inner a = %v; want 3", childIt.Value)
	}
}

func TestCounterUniqueAcrossChain(t *testing.T) {
	root := New()
	c1, _ := root.Initialize("a", Item{})
	child := root.Push()
	c2, _ := child.Initialize("b", Item{})
	c3, _ := child.Initialize("c", Item{})
	if c1 == c2 || c2 == c3 || c1 == c3 {
		t.Errorf("expected unique counters, got %d %d %d", c1, c2, c3)
	}
	// A deeper re-initialization of the same name gets a strictly
	// larger counter than the parent's binding.
	c4, _ := child.Initialize("a", Item{})
	if c4 <= c1 {
		t.Errorf("shadowed child counter %d should exceed parent counter %d", c4, c1)
	}
}

func TestReservedAndConstantBlockMutation(t *testing.T) {
	s := New()
	s.Initialize("PI", Item{Constant: true, Value: 3})
	if err := s.Set("PI", 4); err == nil {
		t.Error("expected constant mutation to fail")
	}
	if err := s.Uninitialize("PI"); err == nil {
		t.Error("expected constant uninitialize to fail")
	}

	s.Initialize("Int", Item{Reserved: true, IsType: true})
	if err := s.Set("Int", 1); err == nil {
		t.Error("expected reserved mutation to fail")
	}
}

func TestGetTypeAndVariableFull(t *testing.T) {
	s := New()
	s.Initialize("Int", Item{IsType: true, Reserved: true})
	s.Initialize("x", Item{Value: 1})

	if _, err := s.GetVariableFull("Int"); err == nil {
		t.Error("GetVariableFull should reject a type binding")
	}
	if _, err := s.GetTypeFull("x"); err == nil {
		t.Error("GetTypeFull should reject a variable binding")
	}
	if _, err := s.GetTypeFull("Int"); err != nil {
		t.Error("GetTypeFull should accept a type binding")
	}
}
