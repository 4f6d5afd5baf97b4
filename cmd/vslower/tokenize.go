package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vslower/internal/lexer"
	"vslower/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Tokenize a source file and print its tokens",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	out, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	lx := lexer.New(string(src))
	for {
		t, err := lx.Next()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-8s %-6s %q\n", t.Span, t.Kind, t.Text)
		if t.Kind == token.EOF {
			break
		}
	}
	return nil
}
