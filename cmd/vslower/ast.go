package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vslower/internal/astprint"
	"vslower/internal/diagfmt"
	"vslower/internal/parser"
)

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Parse a source file and print its AST and symbol table",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAST,
}

func runAST(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	useColor, err := resolveColor(cmd)
	if err != nil {
		return err
	}
	out, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	tree, syms, _, err := parser.Parse(string(src))
	if err != nil {
		diagfmt.Fatal(cmd.ErrOrStderr(), err, useColor)
		return errSilent
	}

	diagfmt.Note(out, "== AST ==", useColor)
	astprint.Print(out, tree)
	diagfmt.Note(out, "== Symbols ==", useColor)
	syms.Dump(out)
	return nil
}
