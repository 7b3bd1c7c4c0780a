package cmd

import (
	"fmt"

	"github.com/freedmand/langcore/internal/optable"
	"github.com/freedmand/langcore/internal/parser"
	"github.com/spf13/cobra"
)

var astEvalExpr string

// astCmd runs the tokenizer and parser and prints the resulting AST's
// structural string form, without interpreting or translating it.
var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Parse a source file or an inline expression and print its AST",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		source, _, err := readSource(astEvalExpr, args)
		if err != nil {
			return err
		}
		p := parser.New(source, optable.New())
		root, err := p.Parse()
		if err != nil {
			fmt.Fprintln(c.ErrOrStderr(), colorize("31", err.Error()))
			return errSilent
		}
		fmt.Fprintln(c.OutOrStdout(), root.String())
		return nil
	},
	SilenceUsage: true,
}

func init() {
	astCmd.Flags().StringVarP(&astEvalExpr, "eval", "e", "", "parse an inline expression instead of a file")
	rootCmd.AddCommand(astCmd)
}
