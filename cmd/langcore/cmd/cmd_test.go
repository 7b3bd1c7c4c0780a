package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errBuf bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errBuf.String(), err
}

func TestRunEvalPrintsValue(t *testing.T) {
	out, _, err := runCLI(t, "run", "-e", "1 + 2 * 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "7" {
		t.Fatalf("expected 7, got %q", out)
	}
}

func TestRunEvalSurfacesSignatureError(t *testing.T) {
	_, stderr, err := runCLI(t, "run", "-e", "1 + 'x'")
	if err == nil {
		t.Fatal("expected a non-nil error for a mismatched signature")
	}
	if !strings.Contains(stderr, "SIGNATURE") {
		t.Fatalf("expected SIGNATURE in stderr, got %q", stderr)
	}
}

func TestTokensEvalListsTokens(t *testing.T) {
	out, _, err := runCLI(t, "tokens", "-e", "1 + 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 tokens (integer, operation, integer, EOF), got %d: %v", len(lines), lines)
	}
}

func TestAstEvalPrintsStructuralTree(t *testing.T) {
	out, _, err := runCLI(t, "ast", "-e", "1 + 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out == "" {
		t.Fatal("expected non-empty AST output")
	}
}

func TestIrEvalPrintsTypedTree(t *testing.T) {
	out, _, err := runCLI(t, "ir", "-e", "x := 1\nx + 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Int") {
		t.Fatalf("expected the IR dump to mention the Int type, got %q", out)
	}
}

func TestRunRequiresFileOrEval(t *testing.T) {
	// Flag values persist across Execute calls; clear the -e value left
	// by earlier tests so the command really has no input.
	runEvalExpr = ""
	_, _, err := runCLI(t, "run")
	if err == nil {
		t.Fatal("expected an error when neither a file nor -e is given")
	}
}
