package cmd

import (
	"fmt"

	"github.com/freedmand/langcore/internal/pipeline"
	"github.com/spf13/cobra"
)

var runEvalExpr string

// runCmd tokenizes, parses, and interprets a source file or inline
// expression, printing the resulting value.
//
// Grounded on CWBudde-go-dws's cmd/dwscript/cmd/run.go: a single-shot
// "evaluate and print" command taking either a file path argument or
// an -e/--eval inline expression, registered on rootCmd via init().
var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Interpret a source file or an inline expression and print its value",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		source, _, err := readSource(runEvalExpr, args)
		if err != nil {
			return err
		}
		ctx := pipeline.Interpret(source)
		if ctx.Failed() {
			if de, ok := ctx.AsDiagnostic(); ok {
				fmt.Fprintln(c.ErrOrStderr(), colorize("31", de.Error()))
			} else {
				fmt.Fprintln(c.ErrOrStderr(), colorize("31", ctx.Err.Error()))
			}
			return errSilent
		}
		fmt.Fprintln(c.OutOrStdout(), formatValue(ctx.Value))
		return nil
	},
	SilenceUsage: true,
}

// errSilent signals a handled, already-printed failure so Execute
// exits non-zero without cobra repeating the error text.
var errSilent = &silentError{}

type silentError struct{}

func (*silentError) Error() string { return "" }

func init() {
	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "evaluate an inline expression instead of a file")
	rootCmd.AddCommand(runCmd)
}
