package cmd

import "testing"

func TestRunLex_TokenizesInlineSource(t *testing.T) {
	lexEval = `let x: i32 = 1;`
	defer func() { lexEval = "" }()

	if err := runLex(lexCmd, nil); err != nil {
		t.Fatalf("expected lexing to succeed, got %v", err)
	}
}

func TestRunLex_InvalidTokenFails(t *testing.T) {
	lexEval = `let x: i32 = 1; @`
	defer func() { lexEval = "" }()

	if err := runLex(lexCmd, nil); err == nil {
		t.Fatalf("expected lexing to fail on an illegal character")
	}
}

func TestReadSource_PrefersEvalOverArgs(t *testing.T) {
	src, name, err := readSource("let x: i32 = 1;", []string{"ignored.blb"})
	if err != nil {
		t.Fatalf("readSource error: %v", err)
	}
	if src != "let x: i32 = 1;" || name != "<eval>" {
		t.Fatalf("expected eval source to win, got src=%q name=%q", src, name)
	}
}
