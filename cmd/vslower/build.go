package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vslower/internal/astprint"
	"vslower/internal/config"
	"vslower/internal/diagfmt"
	"vslower/internal/ir"
	"vslower/internal/ircache"
	"vslower/internal/irprint"
	"vslower/internal/lower"
	"vslower/internal/parser"
	"vslower/internal/symbols"
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile a source file down to IR",
	Long:  "build parses, resolves and lowers a source file to IR, the same generate_ir(input_stream) pipeline the library entrypoint exposes.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().Bool("no-cache", false, "skip the on-disk IR cache even if a project config enables it")
}

func runBuild(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	useColor, err := resolveColor(cmd)
	if err != nil {
		return err
	}
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	out, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	debug := verbose || cfg.Compiler.Debug

	var cache *ircache.Cache
	var key ircache.Key
	if !noCache {
		if dir, err := ircache.DefaultDir(); err == nil {
			if c, err := ircache.Open(dir); err == nil {
				cache = c
				key = ircache.HashSource(src)
			}
		}
	}

	if cache != nil {
		if cached, ok, err := cache.Get(key); err == nil && ok {
			if debug {
				diagfmt.Note(out, "== IR (cache hit) ==", useColor)
			}
			irprint.Print(out, cached)
			return nil
		}
	}

	tree, syms, rtIDs, err := parser.Parse(string(src))
	if err != nil {
		diagfmt.Fatal(cmd.ErrOrStderr(), err, useColor)
		return errSilent
	}

	if debug {
		diagfmt.Note(out, "== AST ==", useColor)
		astprint.Print(out, tree)
		diagfmt.Note(out, "== Symbols ==", useColor)
		syms.Dump(out)
	}

	if err := checkDisabledRuntimeCalls(cfg, syms, rtIDs); err != nil {
		diagfmt.Fatal(cmd.ErrOrStderr(), err, useColor)
		return errSilent
	}

	module, err := lower.LowerModule(tree, syms, rtIDs)
	if err != nil {
		diagfmt.Fatal(cmd.ErrOrStderr(), err, useColor)
		return errSilent
	}

	if err := ir.Validate(module); err != nil {
		diagfmt.Fatal(cmd.ErrOrStderr(), fmt.Errorf("generated IR failed validation: %w", err), useColor)
		return errSilent
	}

	if debug {
		diagfmt.Note(out, "== IR ==", useColor)
	}
	irprint.Print(out, module)

	if cache != nil {
		if err := cache.Put(key, module); err != nil {
			diagfmt.Note(cmd.ErrOrStderr(), fmt.Sprintf("warning: failed to write IR cache: %v", err), useColor)
		}
	}
	return nil
}

// checkDisabledRuntimeCalls rejects a program that calls a runtime-library
// function the project's vslower.toml has disabled (internal/config's
// [runtime].disable list) — a project-level policy check no part of
// spec.md's lowering itself is responsible for.
func checkDisabledRuntimeCalls(cfg config.Config, syms *symbols.Service, rtIDs map[string]symbols.SymbolID) error {
	for name, id := range rtIDs {
		if !cfg.IsDisabled(name) {
			continue
		}
		if syms.GetByID(id).CallCount() > 0 {
			return fmt.Errorf("%s is disabled by vslower.toml but is called in this program", name)
		}
	}
	return nil
}
