package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vslower/internal/diagfmt"
	"vslower/internal/ir"
	"vslower/internal/irprint"
	"vslower/internal/lower"
	"vslower/internal/parser"
)

var irCmd = &cobra.Command{
	Use:   "ir [file]",
	Short: "Parse, lower and print a source file's IR",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIR,
}

func init() {
	irCmd.Flags().Bool("no-validate", false, "skip running internal/ir.Validate before printing")
}

func runIR(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	useColor, err := resolveColor(cmd)
	if err != nil {
		return err
	}
	noValidate, err := cmd.Flags().GetBool("no-validate")
	if err != nil {
		return err
	}
	out, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	module, lowerErr := compile(string(src))
	if lowerErr != nil {
		diagfmt.Fatal(cmd.ErrOrStderr(), lowerErr, useColor)
		return errSilent
	}

	if !noValidate {
		if err := ir.Validate(module); err != nil {
			diagfmt.Fatal(cmd.ErrOrStderr(), fmt.Errorf("generated IR failed validation: %w", err), useColor)
			return errSilent
		}
	}

	irprint.Print(out, module)
	return nil
}

// compile runs the full parse-then-lower pipeline spec §6's
// generate_ir(input_stream) -> Module? names, wrapping parser.Parse and
// lower.LowerModule.
func compile(src string) (*ir.Module, error) {
	tree, syms, rtIDs, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return lower.LowerModule(tree, syms, rtIDs)
}
