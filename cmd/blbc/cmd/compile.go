package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/blb-lang/blbc/internal/compiler"
	"github.com/blb-lang/blbc/internal/ir/llvmir"
	"github.com/spf13/cobra"
)

var (
	compileDebug    bool
	compileEmitLLVM bool
	compileOnly     bool
	compileLdPath   string
	compileOutput   string
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>...",
	Short: "Compile one or more blb source files to native object code",
	Long: `Compile each source file to a same-named .o object. Unless
--compile-only, link every object into one executable.

Flags mirror the driver's external contract: -d dumps LLVM IR to stdout
per file, -e additionally writes it to <stem>.ll, -c stops after emitting
objects, --ld-path overrides the linker invoked for the final link.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().BoolVarP(&compileDebug, "debug", "d", false, "dump IR to stdout")
	compileCmd.Flags().BoolVarP(&compileEmitLLVM, "emit-llvm", "e", false, "write <stem>.ll next to each object")
	compileCmd.Flags().BoolVarP(&compileOnly, "compile-only", "c", false, "produce .o, skip link")
	compileCmd.Flags().StringVar(&compileLdPath, "ld-path", "", "override the system linker")
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "./program", "executable path")
}

func runCompile(cmd *cobra.Command, args []string) error {
	objects := make([]string, 0, len(args))
	for _, file := range args {
		obj, err := compileOneFile(file)
		if err != nil {
			return err
		}
		objects = append(objects, obj)
	}
	if compileOnly {
		return nil
	}
	if err := link(objects, compileOutput, compileLdPath); err != nil {
		return err
	}
	return nil
}

func compileOneFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	src := string(content)

	p := compiler.NewPipeline()
	prog, err := p.Compile(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, compiler.Report(err, path, src, false))
		return "", fmt.Errorf("compilation of %s failed", path)
	}

	stem := strings.TrimSuffix(path, filepath.Ext(path))
	mod := llvmir.NewModule(filepath.Base(stem))
	defer mod.Dispose()
	bd := mod.NewBuilder()
	defer bd.Dispose()

	if err := p.Translate(mod, bd, prog); err != nil {
		fmt.Fprintln(os.Stderr, compiler.Report(err, path, src, false))
		return "", fmt.Errorf("translation of %s failed", path)
	}

	if compileDebug {
		fmt.Println(mod.Print())
	}
	if compileEmitLLVM {
		if err := os.WriteFile(stem+".ll", []byte(mod.Print()), 0o644); err != nil {
			return "", fmt.Errorf("failed to write %s.ll: %w", stem, err)
		}
	}

	objPath := stem + ".o"
	if err := mod.WriteObject(objPath); err != nil {
		return "", fmt.Errorf("failed to write object for %s: %w", path, err)
	}
	return objPath, nil
}

// defaultCRTPaths are the Debian/Ubuntu x86-64 multiarch locations for the
// C runtime start files; --ld-path exists precisely because these aren't
// portable across distros.
func defaultCRTPaths() (crt1, crti, crtn, dynamicLinker string) {
	const libdir = "/usr/lib/x86_64-linux-gnu"
	return libdir + "/crt1.o", libdir + "/crti.o", libdir + "/crtn.o", "/lib64/ld-linux-x86-64.so.2"
}

// linkArgs builds the linker invocation: C runtime start files bracketing
// the translation units' objects, libc linked dynamically, an explicit
// loader path. Split out from link so the argument order can be asserted
// on without actually invoking a linker.
func linkArgs(objects []string, output, ldPath string) (ld string, args []string) {
	ld = ldPath
	if ld == "" {
		ld = "ld"
	}
	crt1, crti, crtn, dynamicLinker := defaultCRTPaths()

	args = []string{"-o", output, "-dynamic-linker", dynamicLinker, crt1, crti}
	args = append(args, objects...)
	args = append(args, "-lc", crtn)
	return ld, args
}

// link invokes the system linker directly (not a compiler driver).
func link(objects []string, output, ldPath string) error {
	ld, args := linkArgs(objects, output, ldPath)

	c := exec.Command(ld, args...)
	var stderr bytes.Buffer
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("link failed: %w\n%s", err, stderr.String())
	}
	return nil
}
