package cmd

import (
	"fmt"

	"github.com/freedmand/langcore/internal/pipeline"
	"github.com/spf13/cobra"
)

var irEvalExpr string

// irCmd runs the full parse -> translate path and prints the typed IR
// tree, without executing the program.
var irCmd = &cobra.Command{
	Use:   "ir [file]",
	Short: "Lower a source file or an inline expression to its typed IR tree and print it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		source, _, err := readSource(irEvalExpr, args)
		if err != nil {
			return err
		}
		ctx := pipeline.Translate(source)
		if ctx.Failed() {
			if de, ok := ctx.AsDiagnostic(); ok {
				fmt.Fprintln(c.ErrOrStderr(), colorize("31", de.Error()))
			} else {
				fmt.Fprintln(c.ErrOrStderr(), colorize("31", ctx.Err.Error()))
			}
			return errSilent
		}
		fmt.Fprintln(c.OutOrStdout(), ctx.IRRoot.String())
		return nil
	},
	SilenceUsage: true,
}

func init() {
	irCmd.Flags().StringVarP(&irEvalExpr, "eval", "e", "", "translate an inline expression instead of a file")
	rootCmd.AddCommand(irCmd)
}
