package cmd

import (
	"os"
	"reflect"
	"testing"
)

func TestLinkArgs_DefaultsToLdAndWiresCRTFiles(t *testing.T) {
	ld, args := linkArgs([]string{"a.o", "b.o"}, "./program", "")
	if ld != "ld" {
		t.Fatalf("expected default linker %q, got %q", "ld", ld)
	}

	crt1, crti, crtn, dynamicLinker := defaultCRTPaths()
	want := []string{
		"-o", "./program",
		"-dynamic-linker", dynamicLinker,
		crt1, crti,
		"a.o", "b.o",
		"-lc", crtn,
	}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("unexpected link args:\ngot:  %v\nwant: %v", args, want)
	}
}

func TestLinkArgs_LdPathOverridesDefault(t *testing.T) {
	ld, _ := linkArgs([]string{"a.o"}, "./program", "/opt/llvm/bin/ld.lld")
	if ld != "/opt/llvm/bin/ld.lld" {
		t.Fatalf("expected overridden linker path, got %q", ld)
	}
}

func TestCompileOneFile_WritesObjectAndLLFiles(t *testing.T) {
	dir := t.TempDir()
	src := dir + "/main.blb"
	writeTestFile(t, src, `function main(): i64 { return 42; }`)

	prevEmit, prevDebug := compileEmitLLVM, compileDebug
	compileEmitLLVM, compileDebug = true, false
	defer func() { compileEmitLLVM, compileDebug = prevEmit, prevDebug }()

	obj, err := compileOneFile(src)
	if err != nil {
		t.Fatalf("compileOneFile error: %v", err)
	}
	if obj != dir+"/main.o" {
		t.Fatalf("expected object at %s, got %s", dir+"/main.o", obj)
	}
	for _, p := range []string{dir + "/main.o", dir + "/main.ll"} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s to be written: %v", p, err)
		}
	}
}

func TestCompileOneFile_ReportsCompileErrors(t *testing.T) {
	dir := t.TempDir()
	src := dir + "/bad.blb"
	writeTestFile(t, src, `function main(): i64 { return x; }`)

	if _, err := compileOneFile(src); err == nil {
		t.Fatalf("expected an undeclared-variable error to abort compilation")
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test fixture %s: %v", path, err)
	}
}
