package symbols

// SymbolID is a dense, append-only identity assigned in declaration
// order (spec §3: "ids are unique and never reused").
type SymbolID uint32

// NoSymbolID marks the absence of a symbol reference, e.g. the Service's
// current function outside a function definition. An AST node the parser
// hasn't resolved is marked by ast.PayloadNone instead.
const NoSymbolID SymbolID = 0xFFFFFFFF

func (id SymbolID) IsValid() bool { return id != NoSymbolID }

// ScopeID names a lexical scope. Scopes are popped in LIFO order but
// their ids, like symbol ids, are never reused.
type ScopeID uint32

const NoScopeID ScopeID = 0xFFFFFFFF

func (id ScopeID) IsValid() bool { return id != NoScopeID }
