// Command blbc is the driver for the blb compiler: lex, parse, check,
// compile to native object code, and pretty-print.
package main

import (
	"fmt"
	"os"

	"github.com/blb-lang/blbc/cmd/blbc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
