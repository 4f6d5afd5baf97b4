// Package runtimelib is the Runtime-Library Registrar from spec §4.2: a
// fixed catalog of externally linked I/O and timing functions that gets
// pre-registered into the symbol table before parsing, then selectively
// declared in the IR module after lowering based on observed call counts.
package runtimelib

import (
	"strconv"

	"vslower/internal/symbols"
	"vslower/internal/types"
)

// Sig describes one runtime function's signature well enough for symbol
// registration and later IR declaration.
type Sig struct {
	Name       string
	Ret        types.DataType
	ParamTypes []types.DataType
	// ParamIsArray marks which parameters are arrays (dims=1, outermost
	// size unknown, per spec §4.2) rather than scalars.
	ParamIsArray []bool
	Variadic     bool // putf's trailing "int,..." arguments
}

// Catalog is the fixed list from spec §4.2.
var Catalog = []Sig{
	{Name: "getint", Ret: types.Int32},
	{Name: "getch", Ret: types.Int32},
	{Name: "getfloat", Ret: types.Float32},
	{Name: "getarray", Ret: types.Int32, ParamTypes: []types.DataType{types.Int32}, ParamIsArray: []bool{true}},
	{Name: "getfarray", Ret: types.Int32, ParamTypes: []types.DataType{types.Float32}, ParamIsArray: []bool{true}},
	{Name: "putint", Ret: types.Void, ParamTypes: []types.DataType{types.Int32}},
	{Name: "putch", Ret: types.Void, ParamTypes: []types.DataType{types.Int32}},
	{Name: "putfloat", Ret: types.Void, ParamTypes: []types.DataType{types.Float32}},
	{Name: "putarray", Ret: types.Void, ParamTypes: []types.DataType{types.Int32, types.Int32}, ParamIsArray: []bool{false, true}},
	{Name: "putfarray", Ret: types.Void, ParamTypes: []types.DataType{types.Int32, types.Float32}, ParamIsArray: []bool{false, true}},
	{Name: "putf", Ret: types.Void, ParamTypes: []types.DataType{types.Int32, types.Int32}, Variadic: true},
	{Name: "starttime", Ret: types.Void},
	{Name: "stoptime", Ret: types.Void},
}

// Register pre-populates svc with every catalog entry as a KindFunc
// symbol at global scope, called once before the parser runs.
func Register(svc *symbols.Service) map[string]symbols.SymbolID {
	ids := make(map[string]symbols.SymbolID, len(Catalog))
	for _, sig := range Catalog {
		sym, err := svc.DefineFunction(sig.Name, sig.Ret, 0)
		if err != nil {
			// The catalog is fixed and collision-free by construction;
			// a failure here is a programmer error, not a user one.
			panic(err)
		}
		for i, pt := range sig.ParamTypes {
			kind := symbols.KindVar
			if i < len(sig.ParamIsArray) && sig.ParamIsArray[i] {
				kind = symbols.KindArray
			}
			pname := sig.Name + ".p" + strconv.Itoa(i)
			psym, _ := svc.Define(pname, kind, pt, 0)
			if kind == symbols.KindArray {
				psym.Shape = []int{0}
			}
			sym.Params = append(sym.Params, psym.ID)
		}
		ids[sig.Name] = sym.ID
	}
	return ids
}
