// Package compiler stitches the pipeline together: lex+parse, bind,
// type-check, integer-inference, desugar, locals-collect, rename, and
// IR-translate. There is no collected-errors list and no partial
// recovery: every pass aborts at its first error.
package compiler

import (
	"github.com/blb-lang/blbc/internal/ast"
	"github.com/blb-lang/blbc/internal/binder"
	"github.com/blb-lang/blbc/internal/desugar"
	"github.com/blb-lang/blbc/internal/ir"
	"github.com/blb-lang/blbc/internal/irgen"
	"github.com/blb-lang/blbc/internal/locals"
	"github.com/blb-lang/blbc/internal/parser"
	"github.com/blb-lang/blbc/internal/rename"
	"github.com/blb-lang/blbc/internal/typecheck"
)

// Pass is one semantic stage: it mutates prog in place and returns the
// pass's own error type (already Spanned, except the translator's).
type Pass interface {
	Name() string
	Run(prog *ast.Program) error
}

type funcPass struct {
	name string
	run  func(*ast.Program) error
}

func (p funcPass) Name() string                { return p.name }
func (p funcPass) Run(prog *ast.Program) error { return p.run(prog) }

// NewPass wraps a func(*ast.Program) error as a Pass.
func NewPass(name string, run func(*ast.Program) error) Pass {
	return funcPass{name: name, run: run}
}

// voidPass adapts a pass that can never fail (desugar, locals, rename) to
// Pass's error-returning shape.
func voidPass(run func(*ast.Program)) func(*ast.Program) error {
	return func(prog *ast.Program) error {
		run(prog)
		return nil
	}
}

// DefaultPasses returns the six semantic passes in pipeline order: binder,
// type checker, integer inference, for-desugarer, locals collector,
// renamer. Lexing/parsing precede these (they build the AST rather than
// annotate one); IR translation follows (it needs a backend, not just an
// *ast.Program).
func DefaultPasses() []Pass {
	return []Pass{
		NewPass("bind", binder.Bind),
		NewPass("typecheck", typecheck.Check),
		NewPass("infer", typecheck.Infer),
		NewPass("desugar", voidPass(desugar.Run)),
		NewPass("locals", voidPass(locals.Collect)),
		NewPass("rename", voidPass(rename.Run)),
	}
}

// PassManager runs a fixed ordered list of passes over a program, stopping
// at the first error.
type PassManager struct {
	passes []Pass
}

// NewPassManager creates a manager that runs passes in the given order.
func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

// AddPass appends a pass, to run after every previously added one.
func (pm *PassManager) AddPass(pass Pass) {
	pm.passes = append(pm.passes, pass)
}

// Passes returns the registered passes in run order.
func (pm *PassManager) Passes() []Pass {
	return pm.passes
}

// RunAll runs every pass over prog in order, returning the first error and
// skipping the rest. One failing pass means the whole pipeline failed.
func (pm *PassManager) RunAll(prog *ast.Program) error {
	for _, pass := range pm.passes {
		if err := pass.Run(prog); err != nil {
			return err
		}
	}
	return nil
}

// Pipeline drives the whole compiler: parsing, the semantic PassManager,
// and IR translation.
type Pipeline struct {
	Passes *PassManager
}

// NewPipeline builds a Pipeline with the standard six semantic passes.
func NewPipeline() *Pipeline {
	return &Pipeline{Passes: NewPassManager(DefaultPasses()...)}
}

// Parse lexes and parses src into an AST. A lexical error surfaces wrapped
// as the parser's own ParseError.
func (p *Pipeline) Parse(src string) (*ast.Program, error) {
	return parser.New(src).ParseProgram()
}

// Analyze runs every semantic pass over prog, aborting at the first error.
func (p *Pipeline) Analyze(prog *ast.Program) error {
	return p.Passes.RunAll(prog)
}

// Compile parses src and runs every semantic pass, leaving prog ready for
// Translate. This covers every pipeline stage except IR translation, which
// needs a concrete backend the caller must supply.
func (p *Pipeline) Compile(src string) (*ast.Program, error) {
	prog, err := p.Parse(src)
	if err != nil {
		return nil, err
	}
	if err := p.Analyze(prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// Translate lowers a fully-analyzed prog into mod via bd, the pipeline's
// final stage. Callers construct mod/bd from a concrete internal/ir
// backend (internal/ir/llvmir.NewModule + its NewBuilder).
func (p *Pipeline) Translate(mod ir.Module, bd ir.Builder, prog *ast.Program) error {
	return irgen.Translate(mod, bd, prog)
}
