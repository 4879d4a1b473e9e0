// Package printer renders an *ast.Program back to `.blb` source text, so
// that reparsing the printed text yields the tree that was printed.
// Explicit parenthesisation survives as ast.Group nodes, so the printer
// never has to reason about operator precedence itself: it only ever has
// to reproduce the shape the tree already encodes.
package printer

import (
	"strconv"
	"strings"

	"github.com/blb-lang/blbc/internal/ast"
)

// Options configures indentation.
type Options struct {
	IndentWidth int
}

// DefaultOptions indents blocks by four spaces.
var DefaultOptions = Options{IndentWidth: 4}

// Printer renders AST nodes to source text.
type Printer struct {
	opts  Options
	sb    strings.Builder
	depth int
}

// New creates a Printer with the given options.
func New(opts Options) *Printer {
	return &Printer{opts: opts}
}

// Print renders prog using DefaultOptions.
func Print(prog *ast.Program) string {
	return New(DefaultOptions).PrintProgram(prog)
}

func (p *Printer) indent() string {
	return strings.Repeat(" ", p.depth*p.opts.IndentWidth)
}

// PrintProgram renders every global statement in Globals' source order,
// one blank line apart.
func (p *Printer) PrintProgram(prog *ast.Program) string {
	p.sb.Reset()
	for i, g := range prog.Globals {
		if i > 0 {
			p.sb.WriteString("\n\n")
		}
		p.printGlobal(g)
	}
	if len(prog.Globals) > 0 {
		p.sb.WriteString("\n")
	}
	return p.sb.String()
}

func (p *Printer) printGlobal(g ast.GlobalStatement) {
	switch v := g.(type) {
	case *ast.FunctionStatement:
		p.printFunction(v)
	case *ast.StructStatement:
		p.printStruct(v)
	case *ast.LetDecl:
		p.printLetDecl(v)
	}
}

func (p *Printer) printFunction(fn *ast.FunctionStatement) {
	if fn.IsExtern {
		p.sb.WriteString("extern function ")
		p.sb.WriteString(fn.Name)
		p.sb.WriteString("(")
		p.printParams(fn.Params)
		p.sb.WriteString(")")
		p.printRetType(fn.RetType)
		p.sb.WriteString(";")
		return
	}
	p.sb.WriteString("function ")
	p.sb.WriteString(fn.Name)
	p.sb.WriteString("(")
	p.printParams(fn.Params)
	p.sb.WriteString(")")
	p.printRetType(fn.RetType)
	p.sb.WriteString(" ")
	p.printBlock(fn.Body)
}

func (p *Printer) printRetType(rt *ast.TypeSyntax) {
	if rt != nil {
		p.sb.WriteString(": " + rt.String())
	}
}

func (p *Printer) printParams(params []*ast.LetDecl) {
	for i, param := range params {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.sb.WriteString(param.Name + ": " + param.Annotation.String())
	}
}

func (p *Printer) printStruct(st *ast.StructStatement) {
	p.sb.WriteString("struct " + st.Name + " {")
	if len(st.Fields) == 0 {
		p.sb.WriteString("}")
		return
	}
	p.sb.WriteString("\n")
	p.depth++
	for _, f := range st.Fields {
		p.sb.WriteString(p.indent() + f.Name + ": " + f.Annotation.String() + ",\n")
	}
	p.depth--
	p.sb.WriteString(p.indent() + "}")
}

func (p *Printer) printLetDecl(decl *ast.LetDecl) {
	p.sb.WriteString("let " + decl.Name)
	if decl.Annotation != nil {
		p.sb.WriteString(": " + decl.Annotation.String())
	}
	p.sb.WriteString(" = " + p.exprString(decl.Init) + ";")
}

func (p *Printer) printBlock(stmts *ast.Statements) {
	if len(stmts.List) == 0 {
		p.sb.WriteString("{}")
		return
	}
	p.sb.WriteString("{\n")
	p.depth++
	for _, s := range stmts.List {
		p.sb.WriteString(p.indent())
		p.printStatement(s)
		p.sb.WriteString("\n")
	}
	p.depth--
	p.sb.WriteString(p.indent() + "}")
}

func (p *Printer) printStatement(s *ast.Statement) {
	switch s.Kind {
	case ast.StmtIf:
		p.sb.WriteString("if " + p.exprString(s.Cond) + " ")
		p.printBlock(s.Then)
		if s.Else != nil {
			p.sb.WriteString(" else ")
			p.printBlock(s.Else)
		}
	case ast.StmtLet:
		p.printLetDecl(s.Decl)
	case ast.StmtWhile:
		p.sb.WriteString("while " + p.exprString(s.Cond) + " ")
		p.printBlock(s.Body)
	case ast.StmtFor:
		p.sb.WriteString("for " + s.Decl.Name)
		if s.Decl.Annotation != nil {
			p.sb.WriteString(": " + s.Decl.Annotation.String())
		}
		p.sb.WriteString(" = " + p.exprString(s.Decl.Init) + "; ")
		p.sb.WriteString(p.exprString(s.Cond) + "; ")
		p.sb.WriteString(p.exprString(s.Step) + " ")
		p.printBlock(s.Body)
	case ast.StmtReturn:
		p.sb.WriteString("return")
		if s.Value != nil {
			p.sb.WriteString(" " + p.exprString(s.Value))
		}
		p.sb.WriteString(";")
	case ast.StmtBreak:
		p.sb.WriteString("break;")
	case ast.StmtContinue:
		p.sb.WriteString("continue;")
	case ast.StmtExpression:
		p.sb.WriteString(p.exprString(s.Expr) + ";")
	}
}

// exprString renders an expression to text. Sub-expressions never need
// parenthesising on their own account: an ast.Group already exists
// wherever the source had explicit parens, and prints its own.
func (p *Printer) exprString(e ast.Expression) string {
	switch v := e.(type) {
	case *ast.Group:
		return "(" + p.exprString(v.Inner) + ")"
	case *ast.BinaryOperation:
		if v.Op.IsUnary() {
			if v.Op == ast.OpNot {
				return "not " + p.exprString(v.Left)
			}
			return "-" + p.exprString(v.Left)
		}
		return p.exprString(v.Left) + " " + v.Op.String() + " " + p.exprString(v.Right)
	case *ast.Literal:
		return p.literalString(v)
	case *ast.Call:
		return v.Callee + "(" + p.exprList(v.Args) + ")"
	case *ast.Assignment:
		return p.exprString(v.Left) + " = " + p.exprString(v.Right)
	case *ast.ArrayInitializer:
		return "[" + p.exprList(v.Values) + "]"
	case *ast.AddrOf:
		return "addrof " + p.exprString(v.Expr)
	case *ast.Deref:
		return "deref " + p.exprString(v.Expr)
	default:
		return "?"
	}
}

func (p *Printer) exprList(es []ast.Expression) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = p.exprString(e)
	}
	return strings.Join(parts, ", ")
}

func (p *Printer) literalString(lit *ast.Literal) string {
	switch lit.Kind {
	case ast.LitTrue:
		return "true"
	case ast.LitFalse:
		return "false"
	case ast.LitInteger:
		return strconv.FormatInt(lit.IntValue, 10)
	case ast.LitFloat:
		return formatFloat(lit.FloatValue)
	case ast.LitIdentifier:
		return lit.StringValue
	case ast.LitString:
		return `"` + lit.StringValue + `"`
	case ast.LitArrayAccess:
		return p.exprString(lit.Base) + "[" + p.exprString(lit.Index) + "]"
	case ast.LitNull:
		return "null"
	default:
		return "?"
	}
}

// formatFloat renders v so it always re-lexes as FLOAT, never INTEGER:
// the lexer requires a digit on both sides of the decimal point.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
