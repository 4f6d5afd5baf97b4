// Package main is the vslower CLI, the "collaborator driver" spec §6
// describes: it reads a single source file (or stdin), drives the
// parser and lowerer, and reports the result. Its subcommand layout
// (build/tokenize/ast/ir/version) and persistent flags mirror the
// teacher's cmd/surge root command (cmd/surge/main.go).
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vslower",
	Short: "AST-to-IR lowering engine for a small C-like language",
	Long:  "vslower parses a small statically typed imperative language, resolves it against a symbol/scope model, and lowers it to a three-address SSA-friendly IR.",
}

// errSilent is returned by a RunE that has already reported its error
// itself (via diagfmt.Fatal, colorized per the --color flag) — it only
// needs main to see a non-nil error so the process exits non-zero, per
// spec §6: "Exit status 0 on success, non-zero on parse failure or
// semantic error."
var errSilent = errors.New("")

func main() {
	rootCmd.Version = buildVersion
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("verbose", false, "print every lowering stage (AST, symbol table, IR)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "write output to file instead of stdout")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(astCmd)
	rootCmd.AddCommand(irCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
