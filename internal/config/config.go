// Package config loads the optional vslower.toml project file, the way
// the teacher's cmd/surge loads surge.toml via project.FindSurgeToml +
// github.com/BurntSushi/toml (cmd/surge/project_manifest.go). Unlike the
// teacher's manifest — which names an entrypoint module in a multi-file
// project — this compiler takes a single source file on the command
// line (spec §6's CLI surface), so vslower.toml only ever carries
// compiler-level defaults: which runtime-library functions a program may
// not call (`vslower build` rejects a program that calls one) and the
// default debug-dump verbosity.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest file a project directory may carry.
const FileName = "vslower.toml"

// Config is the decoded contents of vslower.toml. Every field is optional;
// a missing file or a missing [section] leaves the matching Go zero value,
// which the CLI treats as "use the built-in default" (spec §6: the CLI
// surface's defaults are not spec-mandated, only its two required flags
// are).
type Config struct {
	Compiler CompilerConfig `toml:"compiler"`
	Runtime  RuntimeConfig  `toml:"runtime"`
}

// CompilerConfig holds debug-build output defaults (spec §6: "Debug
// build prints the AST, symbol table, and textual IR").
type CompilerConfig struct {
	// Debug, when true, makes `vslower build` behave like `--verbose` was
	// passed on every invocation unless overridden on the command line.
	Debug bool `toml:"debug"`
}

// RuntimeConfig lets a project declare it only uses a subset of the
// runtime-library catalog (internal/runtimelib). `vslower build` fails
// when the program calls a function named in Disable. Lowering itself
// ignores this — spec §4.2's call-count tracking is unconditional.
type RuntimeConfig struct {
	Disable []string `toml:"disable"`
}

// Find looks for vslower.toml starting at dir and walking up to the
// filesystem root, mirroring project.FindSurgeToml's upward search.
func Find(dir string) (string, bool, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false, err
	}
	for {
		candidate := filepath.Join(abs, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !os.IsNotExist(err) {
			return "", false, err
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", false, nil
		}
		abs = parent
	}
}

// Load decodes path into a Config. An absent path is not this function's
// concern — callers should skip Load when Find reports ok=false.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, nil
}

// IsDisabled reports whether cfg's [runtime] section names fn in its
// disable list.
func (c Config) IsDisabled(fn string) bool {
	for _, n := range c.Runtime.Disable {
		if n == fn {
			return true
		}
	}
	return false
}
