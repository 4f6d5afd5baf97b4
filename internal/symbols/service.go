// Package symbols implements the Symbol & Scope Service from spec §4.1:
// an append-only symbol registry plus a LIFO stack of lexical scopes,
// driven live by the parser while it builds the AST.
package symbols

import (
	"fmt"

	"vslower/internal/types"
)

// Service is the compilation-session object spec §9 calls for in place
// of the source language's module-level globals: one instance owns the
// symbol registry and scope stack for one translation unit.
type Service struct {
	symbols *arena[Symbol]
	scopes  []*Scope
	stack   []ScopeID

	nextScopeID ScopeID
	curFunc     SymbolID // NoSymbolID outside a function definition
}

// Init creates an empty registry and pushes the global scope, matching
// spec §4.1's init()/destroy() lifecycle (destroy is just letting the
// Service go out of scope in Go).
func Init() *Service {
	s := &Service{
		symbols: newArena[Symbol](64),
		curFunc: NoSymbolID,
	}
	s.pushScope()
	return s
}

func (s *Service) pushScope() ScopeID {
	id := s.nextScopeID
	s.nextScopeID++
	parent := NoScopeID
	if len(s.stack) > 0 {
		parent = s.stack[len(s.stack)-1]
	}
	depth := len(s.stack)
	sc := newScope(id, parent, depth)
	s.scopes = append(s.scopes, sc)
	s.stack = append(s.stack, id)
	return id
}

// EnterScope pushes a fresh scope on top of the stack.
func (s *Service) EnterScope() {
	s.pushScope()
}

// ExitScope pops the current scope. Per spec §4.1 this frees only the
// name map; every symbol it named stays in the registry.
func (s *Service) ExitScope() {
	if len(s.stack) <= 1 {
		panic("symbols: ExitScope called with only the global scope on the stack")
	}
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Service) currentScope() *Scope {
	id := s.stack[len(s.stack)-1]
	return s.scopeByID(id)
}

func (s *Service) scopeByID(id ScopeID) *Scope {
	for _, sc := range s.scopes {
		if sc.ID == id {
			return sc
		}
	}
	return nil
}

// EnterFunction marks fn as the function currently being defined. Every
// var/array/const Define call until the matching ExitFunction appends its
// symbol to fn's Locals in declaration order (spec §4.1).
func (s *Service) EnterFunction(fn SymbolID) {
	s.curFunc = fn
}

func (s *Service) ExitFunction() {
	s.curFunc = NoSymbolID
}

// Define allocates the next dense SymbolID, installs name in the current
// scope, and — if a function is being defined — appends the symbol to
// its local-variable list. It returns an error (spec's "Redeclaration")
// if name already exists in the current scope; that error is fatal per
// spec §7, so callers should abort the compilation on it.
func (s *Service) Define(name string, kind Kind, dt types.DataType, line int) (*Symbol, error) {
	cur := s.currentScope()
	if _, exists := cur.lookup(name); exists {
		return nil, fmt.Errorf("Error at line %d: Redeclaration of symbol '%s'", line, name)
	}

	sym := Symbol{
		Name:          name,
		Kind:          kind,
		DataType:      dt,
		Line:          line,
		Depth:         cur.Depth,
		EnclosingFunc: s.curFunc,
	}
	id := SymbolID(s.symbols.allocate(sym))
	s.symbols.get(uint32(id)).ID = id
	cur.declare(name, id)

	if s.curFunc.IsValid() {
		owner := s.symbols.get(uint32(s.curFunc))
		owner.Locals = append(owner.Locals, id)
	}
	return s.symbols.get(uint32(id)), nil
}

// DefineFunction is Define specialised for KindFunc: the new symbol
// becomes valid as a call target and as the argument to EnterFunction
// before its parameters are declared.
func (s *Service) DefineFunction(name string, retType types.DataType, line int) (*Symbol, error) {
	return s.Define(name, KindFunc, retType, line)
}

// Lookup searches scopes from innermost to outermost (spec §4.1).
func (s *Service) Lookup(name string) (*Symbol, bool) {
	for i := len(s.stack) - 1; i >= 0; i-- {
		sc := s.scopeByID(s.stack[i])
		if id, ok := sc.lookup(name); ok {
			return s.symbols.get(uint32(id)), true
		}
	}
	return nil, false
}

// LookupCurrent restricts the search to the current scope only.
func (s *Service) LookupCurrent(name string) (*Symbol, bool) {
	cur := s.currentScope()
	if id, ok := cur.lookup(name); ok {
		return s.symbols.get(uint32(id)), true
	}
	return nil, false
}

// GetByID is the registry's O(1) index operation.
func (s *Service) GetByID(id SymbolID) *Symbol {
	return s.symbols.get(uint32(id))
}

// Count returns the number of symbols defined so far, used by the
// "unique symbol ids" property test (spec §8.1).
func (s *Service) Count() int {
	return int(s.symbols.len())
}

// All returns every symbol in declaration order. Used by Dump.
func (s *Service) All() []*Symbol {
	out := make([]*Symbol, 0, s.symbols.len())
	for i := uint32(0); i < s.symbols.len(); i++ {
		out = append(out, s.symbols.get(i))
	}
	return out
}
