package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"vslower/internal/config"
	"vslower/internal/diagfmt"
)

// readSource implements spec §6's "single positional argument is the
// source file path; absent -> read from standard input."
func readSource(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

// resolveColor reads the --color persistent flag and decides whether
// stdout output should be colorized, auto-detecting a terminal.
func resolveColor(cmd *cobra.Command) (bool, error) {
	raw, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	mode, err := diagfmt.ParseColorMode(raw)
	if err != nil {
		return false, err
	}
	return diagfmt.ShouldColor(mode, os.Stdout), nil
}

// openOutput returns the writer a subcommand should render to: the file
// named by -o/--output, or cmd's own stdout.
func openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	path, err := cmd.Root().PersistentFlags().GetString("output")
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// loadProjectConfig loads vslower.toml from the current directory tree,
// if one exists (internal/config). A project without one gets the zero
// Config, which every caller treats as "use the built-in defaults."
func loadProjectConfig() (config.Config, error) {
	path, ok, err := config.Find(".")
	if err != nil || !ok {
		return config.Config{}, err
	}
	return config.Load(path)
}
