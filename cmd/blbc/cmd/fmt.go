package cmd

import (
	"fmt"
	"os"

	"github.com/blb-lang/blbc/internal/diagnostics"
	"github.com/blb-lang/blbc/internal/parser"
	"github.com/blb-lang/blbc/internal/printer"
	"github.com/spf13/cobra"
)

var (
	fmtWrite  bool
	fmtList   bool
	fmtIndent int
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format blb source files",
	Long: `Format blb source files by parsing them and pretty-printing the
result. With no files, reads from stdin and writes to stdout.

  blbc fmt file.blb          # format to stdout
  blbc fmt -w file.blb       # overwrite the file with its formatted text
  blbc fmt -l *.blb          # list files whose formatting would change`,
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write result to the source file instead of stdout")
	fmtCmd.Flags().BoolVarP(&fmtList, "list", "l", false, "list files whose formatting differs")
	fmtCmd.Flags().IntVar(&fmtIndent, "indent", 4, "spaces per indentation level")
}

func runFmt(cmd *cobra.Command, args []string) error {
	if fmtWrite && fmtList {
		return fmt.Errorf("cannot use -w and -l together")
	}

	if len(args) == 0 {
		src, err := readAllStdin()
		if err != nil {
			return err
		}
		out, err := formatSource(src, "<stdin>")
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	}

	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		src := string(content)
		out, err := formatSource(src, path)
		if err != nil {
			return err
		}

		switch {
		case fmtList:
			if out != src {
				fmt.Println(path)
			}
		case fmtWrite:
			if out != src {
				if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
			}
		default:
			fmt.Print(out)
		}
	}
	return nil
}

func formatSource(src, name string) (string, error) {
	prog, err := parser.New(src).ParseProgram()
	if err != nil {
		if sp, ok := err.(diagnostics.Spanned); ok {
			fmt.Fprintln(os.Stderr, diagnostics.New(sp, name, src).Format(false))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return "", fmt.Errorf("formatting %s failed", name)
	}
	return printer.New(printer.Options{IndentWidth: fmtIndent}).PrintProgram(prog), nil
}
