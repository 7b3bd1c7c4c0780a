// Command langcore is a thin one-shot driver over the core pipeline
// (internal/pipeline): it reads a source file or an inline expression,
// runs it through the tokenizer/parser/interpreter/IR translator, and
// prints the result. It is not a REPL or shell (spec.md §1 Non-goals).
//
// Grounded on the teacher's cmd/funxy/main.go for the overall shape of
// a tiny main() delegating to a cobra command tree, rebuilt around
// github.com/spf13/cobra the way CWBudde-go-dws and opal-lang-opal
// structure their CLIs.
package main

import (
	"fmt"
	"os"

	"github.com/freedmand/langcore/cmd/langcore/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}
