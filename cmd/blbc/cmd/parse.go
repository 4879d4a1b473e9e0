package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/blb-lang/blbc/internal/ast"
	"github.com/blb-lang/blbc/internal/diagnostics"
	"github.com/blb-lang/blbc/internal/parser"
	"github.com/blb-lang/blbc/internal/printer"
	"github.com/spf13/cobra"
)

var (
	parseEval    string
	parseDumpAST bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a blb source file and display its syntax tree",
	Long: `Parse a blb program and either pretty-print it back (the default) or
dump its raw AST structure with --dump-ast.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline source instead of reading a file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the raw AST structure instead of pretty-printing")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, name, err := readSource(parseEval, args)
	if err != nil {
		return err
	}

	prog, perr := parser.New(input).ParseProgram()
	if perr != nil {
		if sp, ok := perr.(diagnostics.Spanned); ok {
			fmt.Fprintln(os.Stderr, diagnostics.New(sp, name, input).Format(false))
		} else {
			fmt.Fprintln(os.Stderr, perr)
		}
		return fmt.Errorf("parsing failed")
	}

	if parseDumpAST {
		dumpProgram(prog, 0)
		return nil
	}
	fmt.Print(printer.Print(prog))
	return nil
}

func dumpProgram(prog *ast.Program, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%sProgram (%d globals)\n", indent, len(prog.Globals))
	for _, g := range prog.Globals {
		dumpGlobal(g, depth+1)
	}
}

func dumpGlobal(g ast.GlobalStatement, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := g.(type) {
	case *ast.FunctionStatement:
		kind := "function"
		if v.IsExtern {
			kind = "extern function"
		}
		fmt.Printf("%s%s %s (%d params)\n", indent, kind, v.Name, len(v.Params))
		if v.Body != nil {
			dumpStatements(v.Body, depth+1)
		}
	case *ast.StructStatement:
		fmt.Printf("%sstruct %s (%d fields)\n", indent, v.Name, len(v.Fields))
	case *ast.LetDecl:
		fmt.Printf("%slet %s\n", indent, v.Name)
	}
}

func dumpStatements(stmts *ast.Statements, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, s := range stmts.List {
		fmt.Printf("%s%s\n", indent, statementKindName(s.Kind))
		switch s.Kind {
		case ast.StmtIf:
			dumpStatements(s.Then, depth+1)
			if s.Else != nil {
				dumpStatements(s.Else, depth+1)
			}
		case ast.StmtWhile, ast.StmtFor:
			dumpStatements(s.Body, depth+1)
		}
	}
}

func statementKindName(k ast.StatementKind) string {
	switch k {
	case ast.StmtIf:
		return "If"
	case ast.StmtLet:
		return "Let"
	case ast.StmtWhile:
		return "While"
	case ast.StmtFor:
		return "For"
	case ast.StmtReturn:
		return "Return"
	case ast.StmtBreak:
		return "Break"
	case ast.StmtContinue:
		return "Continue"
	case ast.StmtExpression:
		return "Expression"
	default:
		return "?"
	}
}
