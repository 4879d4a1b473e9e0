package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "blbc",
	Short: "Compiler for the blb language",
	Long: `blbc lexes, parses, checks, and compiles .blb source files down to
native object code through an LLVM IR backend.

It is a small, statically-typed, C-like language with structs, fixed-size
arrays, and pointers, compiled one translation unit at a time.`,
	Version: "0.1.0-dev",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
