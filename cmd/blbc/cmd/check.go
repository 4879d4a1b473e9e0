package cmd

import (
	"fmt"
	"os"

	"github.com/blb-lang/blbc/internal/compiler"
	"github.com/spf13/cobra"
)

var checkEval string

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Run every semantic pass without emitting code",
	Long: `Run the binder, type checker, integer inference, desugarer, locals
collector, and renamer over a blb program, reporting the first error if
any. Exits 0 with no output on success.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkEval, "eval", "e", "", "check inline source instead of reading a file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	input, name, err := readSource(checkEval, args)
	if err != nil {
		return err
	}

	p := compiler.NewPipeline()
	if _, err := p.Compile(input); err != nil {
		fmt.Fprintln(os.Stderr, compiler.Report(err, name, input, false))
		return fmt.Errorf("check failed")
	}
	return nil
}
