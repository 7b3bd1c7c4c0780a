package cmd

import (
	"fmt"

	"github.com/freedmand/langcore/internal/lexer"
	"github.com/spf13/cobra"
)

var tokensEvalExpr string

// tokensCmd runs only the tokenizer and prints one token per line.
var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Tokenize a source file or an inline expression and print its tokens",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		source, _, err := readSource(tokensEvalExpr, args)
		if err != nil {
			return err
		}
		toks, err := lexer.New(source).All()
		if err != nil {
			fmt.Fprintln(c.ErrOrStderr(), colorize("31", err.Error()))
			return errSilent
		}
		for _, tok := range toks {
			fmt.Fprintln(c.OutOrStdout(), tok.String())
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	tokensCmd.Flags().StringVarP(&tokensEvalExpr, "eval", "e", "", "tokenize an inline expression instead of a file")
	rootCmd.AddCommand(tokensCmd)
}
