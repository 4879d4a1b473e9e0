package compiler

import (
	"fmt"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/blb-lang/blbc/internal/ir/llvmir"
)

// TestMain lets go-snaps prune obsolete snapshots once the package's tests
// finish.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func snapshotModule(t *testing.T, name, src string) {
	t.Helper()

	p := NewPipeline()
	prog, err := p.Compile(src)
	if err != nil {
		t.Fatalf("compile %s: %v", name, err)
	}

	mod := llvmir.NewModule(name)
	defer mod.Dispose()
	bd := mod.NewBuilder()
	defer bd.Dispose()

	if err := p.Translate(mod, bd, prog); err != nil {
		t.Fatalf("translate %s: %v", name, err)
	}
	if err := mod.Verify(); err != nil {
		t.Fatalf("verify %s: %v", name, err)
	}

	snaps.MatchSnapshot(t, fmt.Sprintf("%s_ir", name), mod.Print())
}

func TestSnapshot_HelloWorld(t *testing.T) {
	snapshotModule(t, "hello_world", `
extern function puts(s: string): i32;

function main(): i64 {
	puts("Hello, World!");
	return 0;
}
`)
}

func TestSnapshot_FibonacciLoop(t *testing.T) {
	snapshotModule(t, "fibonacci_loop", `
function fib(n: i64): i64 {
	let a: i64 = 0;
	let b: i64 = 1;
	let i: i64 = 0;
	while (i < n) {
		let next: i64 = a + b;
		a = b;
		b = next;
		i = i + 1;
	}
	return a;
}

function main(): i64 {
	return fib(10);
}
`)
}

func TestSnapshot_ArrayIndexAndPointerDeref(t *testing.T) {
	snapshotModule(t, "array_index_and_pointer_deref", `
function main(): i64 {
	let xs: [3; i64] = [10, 20, 30];
	let p: ptr i64 = addrof xs[1];
	return deref p + xs[2];
}
`)
}
