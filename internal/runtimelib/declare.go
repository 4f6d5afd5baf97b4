package runtimelib

import (
	"vslower/internal/ir"
	"vslower/internal/symbols"
)

// Declare adds one ir.Function declaration (no body, IsDeclaration=true)
// per catalog entry whose symbol has a non-zero observed call count, and
// returns the FuncID each got in m, keyed by symbol id — spec §4.2's
// "after lowering the user program ... adds an IR function declaration."
func Declare(m *ir.Module, svc *symbols.Service, ids map[string]symbols.SymbolID) map[symbols.SymbolID]ir.FuncID {
	out := make(map[symbols.SymbolID]ir.FuncID)
	for _, sig := range Catalog {
		symID := ids[sig.Name]
		sym := svc.GetByID(symID)
		if sym.CallCount() == 0 {
			continue
		}
		fn := &ir.Function{Name: sig.Name, RetType: ir.FromDataType(sig.Ret), IsDeclaration: true}
		for i, pid := range sym.Params {
			psym := svc.GetByID(pid)
			pt := ir.FromDataType(psym.DataType)
			if i < len(sig.ParamIsArray) && sig.ParamIsArray[i] {
				pt = ir.Ptr(pt)
			}
			fn.Params = append(fn.Params, ir.Param{Name: psym.Name, Type: pt})
		}
		out[symID] = m.AddFunc(fn)
	}
	return out
}
