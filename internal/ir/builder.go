package ir

import "strconv"

// Builder is the cursor-plus-factory described in spec §4.4: it tracks an
// insertion block inside one Function and exposes a Create* method per
// instruction variant, naming every result with a monotone counter so
// the lowerer never has to invent names itself.
type Builder struct {
	Fn  *Function
	cur *Block
}

func NewBuilder(fn *Function) *Builder {
	return &Builder{Fn: fn}
}

// NewBlock allocates a block named base and appends it to the function
// without repositioning the cursor. The name is stored as given, so two
// blocks may share a name; only their BlockIDs are unique.
func (b *Builder) NewBlock(base string) *Block {
	id := b.Fn.nextBlock
	b.Fn.nextBlock++
	blk := &Block{ID: id, Name: base}
	b.Fn.Blocks = append(b.Fn.Blocks, blk)
	return blk
}

func (b *Builder) SetInsertPoint(blk *Block) { b.cur = blk }
func (b *Builder) GetInsertBlock() *Block    { return b.cur }

// NewParamValue reserves a fresh ValueID for an incoming parameter,
// which — unlike every other Value — is bound directly by the function
// prologue rather than produced by an instruction.
func (b *Builder) NewParamValue(t Type) Operand {
	return FromValue(b.freshValue(), t)
}

func (b *Builder) freshValue() ValueID {
	b.Fn.nextValue++
	return b.Fn.nextValue
}

func (b *Builder) emit(instr Instr) Operand {
	b.cur.append(instr)
	switch instr.Kind {
	case InstrAlloca:
		return FromValue(instr.Dst, Ptr(instr.Alloca.Elem))
	case InstrLoad:
		return FromValue(instr.Dst, *instr.Load.Ptr.Type.Elem)
	case InstrGep:
		steps := len(instr.Gep.Indices) - 1
		return FromValue(instr.Dst, Ptr(*elemAt(instr.Gep.BaseType, steps)))
	case InstrBinOp:
		return FromValue(instr.Dst, instr.BinOp.Left.Type)
	case InstrICmp:
		return FromValue(instr.Dst, Bool())
	case InstrFCmp:
		return FromValue(instr.Dst, Bool())
	case InstrCast:
		return FromValue(instr.Dst, instr.Cast.To)
	case InstrCall:
		return FromValue(instr.Dst, Void())
	case InstrPhi:
		return FromValue(instr.Dst, instr.Phi.Type)
	default:
		return Operand{}
	}
}

// elemAt walks n Array dimensions down from t's element, used to compute
// a Gep's result type.
func elemAt(t Type, n int) *Type {
	cur := &t
	for i := 0; i < n && cur.Kind == TArray; i++ {
		cur = cur.Elem
	}
	return cur
}

func (b *Builder) CreateAlloca(elem Type, name string) Operand {
	dst := b.freshValue()
	return b.emit(Instr{Kind: InstrAlloca, Dst: dst, Alloca: AllocaInstr{Elem: elem, Name: name}})
}

func (b *Builder) CreateLoad(ptr Operand) Operand {
	dst := b.freshValue()
	return b.emit(Instr{Kind: InstrLoad, Dst: dst, Load: LoadInstr{Ptr: ptr}})
}

func (b *Builder) CreateStore(val, ptr Operand) {
	b.cur.append(Instr{Kind: InstrStore, Store: StoreInstr{Val: val, Ptr: ptr}})
}

func (b *Builder) CreateGep(baseType Type, base Operand, indices []Operand) Operand {
	dst := b.freshValue()
	return b.emit(Instr{Kind: InstrGep, Dst: dst, Gep: GepInstr{BaseType: baseType, Base: base, Indices: indices}})
}

func (b *Builder) CreateBinOp(op BinOpKind, l, r Operand) Operand {
	dst := b.freshValue()
	return b.emit(Instr{Kind: InstrBinOp, Dst: dst, BinOp: BinOpInstr{Op: op, Left: l, Right: r}})
}

func (b *Builder) CreateICmp(op ICmpKind, l, r Operand) Operand {
	dst := b.freshValue()
	return b.emit(Instr{Kind: InstrICmp, Dst: dst, ICmp: ICmpInstr{Op: op, Left: l, Right: r}})
}

func (b *Builder) CreateFCmp(op FCmpKind, l, r Operand) Operand {
	dst := b.freshValue()
	return b.emit(Instr{Kind: InstrFCmp, Dst: dst, FCmp: FCmpInstr{Op: op, Left: l, Right: r}})
}

func (b *Builder) CreateCast(op CastKind, val Operand, to Type) Operand {
	dst := b.freshValue()
	return b.emit(Instr{Kind: InstrCast, Dst: dst, Cast: CastInstr{Op: op, Val: val, To: to}})
}

// CreateCall emits a call; when retType is Void no destination is
// produced, matching spec §4.6's "void call has no value."
func (b *Builder) CreateCall(callee FuncID, name string, args []Operand, retType Type) Operand {
	if retType.Kind == TVoid {
		b.cur.append(Instr{Kind: InstrCall, Call: CallInstr{Callee: callee, Name: name, Args: args}})
		return Operand{}
	}
	dst := b.freshValue()
	instr := Instr{Kind: InstrCall, Dst: dst, Call: CallInstr{Callee: callee, Name: name, Args: args}}
	b.cur.append(instr)
	return FromValue(dst, retType)
}

func (b *Builder) CreatePhi(t Type, incoming []PhiIncoming) Operand {
	dst := b.freshValue()
	return b.emit(Instr{Kind: InstrPhi, Dst: dst, Phi: PhiInstr{Type: t, Incoming: incoming}})
}

func (b *Builder) CreateBr(target BlockID) {
	b.cur.Term = Terminator{Kind: TermBr, Br: BrTerm{Target: target}}
}

func (b *Builder) CreateCondBr(cond Operand, trueBB, falseBB BlockID) {
	b.cur.Term = Terminator{Kind: TermCondBr, CondBr: CondBrTerm{Cond: cond, True: trueBB, False: falseBB}}
}

func (b *Builder) CreateRet(val Operand, hasValue bool) {
	b.cur.Term = Terminator{Kind: TermRet, Ret: RetTerm{HasValue: hasValue, Value: val}}
}

// blockName renders a block's display name, falling back to "bb<id>"
// when the lowerer didn't give it a semantic one (e.g. "while.cond").
func blockName(b *Block) string {
	if b.Name != "" {
		return b.Name
	}
	return "bb" + strconv.Itoa(int(b.ID))
}
