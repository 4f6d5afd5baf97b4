package ir

// Linkage distinguishes a global defined in this module from one merely
// declared (the runtime-library catalog, spec §4.2).
type Linkage uint8

const (
	LinkInternal Linkage = iota
	LinkExternal
)

// Global is a module-level variable or array (spec §3: "global variables
// with optional initializers").
type Global struct {
	ID      GlobalID
	Name    string
	Type    Type
	Linkage Linkage
	IsConst bool

	HasInit bool
	// Init holds one Const per flat slot of Type, row-major, built by
	// the initializer expansion in spec §4.10. A scalar global has
	// exactly one entry.
	Init []Const
}

// Module is the lowerer's single output: every global and function
// produced from one translation unit (spec §3's "IR Module").
type Module struct {
	Name    string
	Globals []*Global
	Funcs   []*Function
}

func NewModule(name string) *Module {
	return &Module{Name: name}
}

func (m *Module) Global(id GlobalID) *Global {
	for _, g := range m.Globals {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func (m *Module) Func(id FuncID) *Function {
	for _, f := range m.Funcs {
		if f.ID == id {
			return f
		}
	}
	return nil
}

func (m *Module) AddGlobal(g *Global) GlobalID {
	g.ID = GlobalID(len(m.Globals))
	m.Globals = append(m.Globals, g)
	return g.ID
}

func (m *Module) AddFunc(f *Function) FuncID {
	f.ID = FuncID(len(m.Funcs))
	m.Funcs = append(m.Funcs, f)
	return f.ID
}
