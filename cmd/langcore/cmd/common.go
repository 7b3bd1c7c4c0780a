package cmd

import (
	"fmt"
	"os"
)

// readSource resolves the input source from either an inline
// expression (-e) or a single file path argument.
func readSource(evalExpr string, args []string) (source, label string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("provide a source file path or use -e for an inline expression")
}

// colorize wraps msg in an ANSI color code when color output is
// enabled, otherwise returns it unchanged.
func colorize(code, msg string) string {
	if !colorEnabled() {
		return msg
	}
	return "\x1b[" + code + "m" + msg + "\x1b[0m"
}
