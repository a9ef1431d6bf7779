package cmd

import (
	"fmt"
	"os"

	"github.com/escript/escript/pkg/escript"
	"github.com/spf13/cobra"
)

var (
	evalExpr string
	printRes bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a script file or inline expression",
	Long: `Execute a program from a file or inline source.

Examples:
  # Run a script file
  escript run script.js

  # Evaluate an inline expression and print its value
  escript run -p -e "1 + 2 * 3"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVarP(&printRes, "print", "p", false, "print the program's final value")
}

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(args)
	if err != nil {
		return err
	}

	prog, err := escript.CompileFile(input, filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return err
	}

	res, err := escript.New().RunProgram(prog)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return err
	}
	if printRes && !res.IsUndefined() {
		fmt.Println(res.String())
	}
	return nil
}

// readInput resolves the script text from the -e flag or a file argument,
// decoding UTF-16 files by their byte order mark.
func readInput(args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) != 1 {
		return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
	}
	filename = args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return "", "", fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input, err = escript.DecodeSource(content)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode file %s: %w", filename, err)
	}
	return input, filename, nil
}
