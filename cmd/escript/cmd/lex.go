package cmd

import (
	"fmt"

	"github.com/escript/escript/internal/lexer"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a script and dump the token stream",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		input, _, err := readInput(args)
		if err != nil {
			return err
		}
		l := lexer.New(lexer.FromString(input))
		for {
			tok := l.Next()
			fmt.Printf("%4d:%-3d %v\n", tok.Pos.Line, tok.Pos.Column, tok)
			if tok.Type == lexer.EOS || tok.Type == lexer.ILLEGAL {
				break
			}
		}
		for _, e := range l.Errors() {
			fmt.Printf("error at %d:%d: %s\n", e.Pos.Line, e.Pos.Column, e.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
}
