package naming

import "testing"

func TestShortestNamesStartsAtA(t *testing.T) {
	s := NewShortestNames()
	if got := s.Next(); got != "a" {
		t.Fatalf("expected first name to be %q, got %q", "a", got)
	}
}

func TestShortestNamesAdvancesThroughAlphabet(t *testing.T) {
	s := NewShortestNames()
	var got []string
	for i := 0; i < 5; i++ {
		got = append(got, s.Next())
	}
	want := []string{"a", "b", "c", "d", "e"}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("name %d: expected %q, got %q", i, w, got[i])
		}
	}
}

func TestShortestNamesRolloverAfterZ(t *testing.T) {
	s := NewShortestNames()
	for i := 0; i < 26; i++ {
		s.Next()
	}
	if got := s.Next(); got != "aa" {
		t.Fatalf("expected rollover to %q, got %q", "aa", got)
	}
}

func TestIsUpperStart(t *testing.T) {
	cases := map[string]bool{
		"Int":    true,
		"A'":     true,
		"x":      false,
		"":       false,
		"_priv":  false,
	}
	for name, want := range cases {
		if got := IsUpperStart(name); got != want {
			t.Fatalf("IsUpperStart(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestIsLowerStart(t *testing.T) {
	cases := map[string]bool{
		"x":     true,
		"value": true,
		"Int":   false,
		"":      false,
	}
	for name, want := range cases {
		if got := IsLowerStart(name); got != want {
			t.Fatalf("IsLowerStart(%q) = %v, want %v", name, got, want)
		}
	}
}
