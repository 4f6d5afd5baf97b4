package symbols

import (
	"fmt"
	"io"
)

// Dump writes one line per registered symbol, in declaration order,
// satisfying spec §6's "debug build prints ... the symbol table."
func (s *Service) Dump(w io.Writer) {
	for _, sym := range s.All() {
		fmt.Fprintf(w, "%4d  %-20s %-10s %-8s line=%d depth=%d", sym.ID, sym.Name, sym.Kind, sym.DataType, sym.Line, sym.Depth)
		if sym.EnclosingFunc.IsValid() {
			fmt.Fprintf(w, " fn=%d", sym.EnclosingFunc)
		}
		if len(sym.Shape) > 0 {
			fmt.Fprintf(w, " shape=%v", sym.Shape)
		}
		if sym.Kind == KindFunc {
			fmt.Fprintf(w, " params=%v locals=%v calls=%d", sym.Params, sym.Locals, sym.CallCount())
		}
		fmt.Fprintln(w)
	}
}

func (k Kind) String() string {
	switch k {
	case KindVar:
		return "var"
	case KindConstVar:
		return "const-var"
	case KindArray:
		return "array"
	case KindConstArray:
		return "const-array"
	case KindFunc:
		return "function"
	default:
		return "?"
	}
}
