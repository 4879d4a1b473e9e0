package diagnostics

import (
	"strings"
	"testing"

	"github.com/blb-lang/blbc/internal/binder"
	"github.com/blb-lang/blbc/internal/source"
)

func TestFormat_IncludesFileLineColumnAndCaret(t *testing.T) {
	src := "function f(): i32 {\n\treturn y;\n}"
	// "y" starts at byte offset 9 within line 2 ("\treturn y;")
	line2Start := strings.Index(src, "\n") + 1
	yOffset := line2Start + strings.Index(src[line2Start:], "y")

	err := &binder.BindError{
		Kind: binder.UndeclaredVariable,
		Span: source.Span{Begin: yOffset, End: yOffset + 1},
		Name: "y",
	}

	ce := New(err, "main.blb", src)
	out := ce.Format(false)

	if !strings.Contains(out, "Error in main.blb:2:") {
		t.Fatalf("expected file:line prefix, got %q", out)
	}
	if !strings.Contains(out, "return y;") {
		t.Fatalf("expected offending source line in output, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected caret in output, got %q", out)
	}
	if !strings.Contains(out, `undeclared variable "y"`) {
		t.Fatalf("expected wrapped error message, got %q", out)
	}
}

func TestFormat_ColorAddsAnsiSequences(t *testing.T) {
	err := &binder.BindError{Kind: binder.BadBreak, Span: source.Span{Begin: 0, End: 1}}
	ce := New(err, "", "break;")
	colored := ce.Format(true)
	plain := ce.Format(false)
	if colored == plain {
		t.Fatalf("expected color mode to differ from plain mode")
	}
	if !strings.Contains(colored, "\033[") {
		t.Fatalf("expected ANSI escape sequence in colored output")
	}
}

func TestFormat_NoFileOmitsFilePrefix(t *testing.T) {
	err := &binder.BindError{Kind: binder.BadContinue, Span: source.Span{Begin: 0, End: 1}}
	ce := New(err, "", "continue;")
	out := ce.Format(false)
	if strings.Contains(out, "Error in ") {
		t.Fatalf("expected no file prefix when File is empty, got %q", out)
	}
	if !strings.Contains(out, "Error at 1:1") {
		t.Fatalf("expected positional header, got %q", out)
	}
}

func TestError_MatchesFormatFalse(t *testing.T) {
	err := &binder.BindError{Kind: binder.BadReturn, Span: source.Span{Begin: 0, End: 1}}
	ce := New(err, "f.blb", "return;")
	if ce.Error() != ce.Format(false) {
		t.Fatalf("Error() should delegate to Format(false)")
	}
}
