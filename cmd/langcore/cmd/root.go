package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Version is set by build flags.
var Version = "0.1.0-dev"

var rootCmd = &cobra.Command{
	Use:           "langcore",
	Short:         "A small expression language's tokenizer, parser, interpreter, and IR translator",
	Version:       Version,
	SilenceErrors: true,
}

// colorEnabled reports whether diagnostic output should be colorized:
// only when stdout is an actual terminal (grounded on the teacher's
// go.mod carrying mattn/go-isatty, unused by its own main.go).
func colorEnabled() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
