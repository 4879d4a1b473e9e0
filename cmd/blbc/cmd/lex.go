package cmd

import (
	"fmt"
	"os"

	"github.com/blb-lang/blbc/internal/diagnostics"
	"github.com/blb-lang/blbc/internal/lexer"
	"github.com/blb-lang/blbc/internal/source"
	"github.com/spf13/cobra"
)

var (
	lexEval     string
	lexShowPos  bool
	lexShowType bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a blb source file and print the resulting tokens",
	Long: `Tokenize a blb program and print the resulting tokens, one per line.

Examples:
  blbc lex program.blb
  blbc lex -e "let x: i32 = 1;"
  blbc lex --show-type --show-pos program.blb`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline source instead of reading a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show each token's line:column")
	lexCmd.Flags().BoolVar(&lexShowType, "show-type", false, "show each token's type name")
}

func runLex(cmd *cobra.Command, args []string) error {
	input, name, err := readSource(lexEval, args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	for {
		tok, err := l.Next()
		if err != nil {
			lexErr := err.(*lexer.LexError)
			fmt.Fprintln(os.Stderr, diagnostics.New(lexErr, name, input).Format(false))
			return fmt.Errorf("lexing failed")
		}
		printToken(tok, input)
		if tok.Type == lexer.EOF {
			break
		}
	}
	return nil
}

func printToken(tok lexer.Token, src string) {
	var out string
	if lexShowType {
		out += fmt.Sprintf("[%-10s] ", tok.Type)
	}
	if tok.Type == lexer.EOF {
		out += "EOF"
	} else {
		out += fmt.Sprintf("%q", tok.Literal)
	}
	if lexShowPos {
		pos := source.PositionOf(src, tok.Span.Begin)
		out += fmt.Sprintf(" @%d:%d", pos.Line, pos.Column)
	}
	fmt.Println(out)
}

// readSource resolves the input program from -e, a file argument, or
// stdin (in that order), and returns it alongside the name the driver
// should report in diagnostics.
func readSource(eval string, args []string) (src, name string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	content, err := readAllStdin()
	if err != nil {
		return "", "", err
	}
	return content, "<stdin>", nil
}
