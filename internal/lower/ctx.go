// Package lower is the Lowerer from spec §4.5-§4.11: it walks the AST
// produced by internal/parser, consults internal/symbols for identity
// and type information, and emits an internal/ir.Module. Per-function
// mutable state (insertion block, symbol-to-location map, pending
// break/continue stacks, the builder's fresh-name counters) is threaded
// explicitly through a FuncCtx value rather than kept in package state,
// per spec §9's "fold these into an explicit compilation-session object."
package lower

import (
	"vslower/internal/ast"
	"vslower/internal/ir"
	"vslower/internal/symbols"
)

// loopFrame is the pending break/continue record for one enclosing while
// loop (spec §4.7): entries accumulate as `break`/`continue` statements
// are lowered inside it and are resolved in one step when the loop
// finishes emission.
type loopFrame struct {
	condBlock  ir.BlockID
	mergeBlock ir.BlockID
	breaks     []ir.BlockID
	continues  []ir.BlockID
}

// FuncCtx is the per-function lowering state described in spec §2's
// component 5 and §9's "stateful builder" note.
type FuncCtx struct {
	lw  *Lowerer
	b   *ir.Builder
	fn  *ir.Function
	sym *symbols.Symbol

	// locals maps a variable/array/parameter symbol to the pointer
	// operand lowering should load from or store through.
	locals map[symbols.SymbolID]ir.Operand
	// arrayParams marks which array symbols are this function's own
	// parameters: their base type for Gep is the pointee type with no
	// leading zero index (spec §4.6), unlike a non-parameter array.
	arrayParams map[symbols.SymbolID]bool

	loops []*loopFrame
	// pending marks a block that holds a break/continue but has not yet
	// been given its redirect terminator; statement-sequence lowering
	// treats this the same as Block.Terminated() (spec §4.7).
	pending map[ir.BlockID]bool
}

func newFuncCtx(lw *Lowerer, fn *ir.Function, sym *symbols.Symbol) *FuncCtx {
	return &FuncCtx{
		lw:      lw,
		b:       ir.NewBuilder(fn),
		fn:      fn,
		sym:     sym,
		locals:      make(map[symbols.SymbolID]ir.Operand),
		arrayParams: make(map[symbols.SymbolID]bool),
		pending:     make(map[ir.BlockID]bool),
	}
}

// blocked reports whether the current insertion block can no longer
// accept instructions: it already has a terminator, or a break/continue
// has been recorded against it awaiting resolution.
func (fc *FuncCtx) blocked() bool {
	b := fc.b.GetInsertBlock()
	return b.Terminated() || fc.pending[b.ID]
}

// Lowerer drives translation of a whole ast.Tree into one ir.Module. It
// owns the maps threading symbol identity to IR identity across
// functions (spec §4.8-§4.9).
type Lowerer struct {
	tree *ast.Tree
	syms *symbols.Service

	module    *ir.Module
	globalMap map[symbols.SymbolID]ir.GlobalID
	funcMap   map[symbols.SymbolID]ir.FuncID
}
