package ir

// OperandKind discriminates Operand.
type OperandKind uint8

const (
	OperandLocal OperandKind = iota
	OperandConst
	OperandGlobal
)

// ConstKind discriminates Const.
type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstFloat
)

// Const is an immediate value.
type Const struct {
	Kind     ConstKind
	IntValue int64
	FloatVal float64
}

// Operand is a value read by an instruction.
type Operand struct {
	Kind   OperandKind
	Local  LocalID
	Const  Const
	Global string
}

// LocalOp builds a local-slot operand.
func LocalOp(id LocalID) Operand {
	return Operand{Kind: OperandLocal, Local: id}
}

// IntOp builds an integer immediate operand.
func IntOp(v int64) Operand {
	return Operand{Kind: OperandConst, Const: Const{Kind: ConstInt, IntValue: v}}
}

// GlobalOp builds a global-reference operand.
func GlobalOp(name string) Operand {
	return Operand{Kind: OperandGlobal, Global: name}
}

// BinOp is a two-operand arithmetic or comparison operation.
type BinOp uint8

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinLt
	BinEq
)

func (op BinOp) String() string {
	switch op {
	case BinAdd:
		return "add"
	case BinSub:
		return "sub"
	case BinMul:
		return "mul"
	case BinLt:
		return "lt"
	case BinEq:
		return "eq"
	default:
		return "unknown"
	}
}

// InstrKind discriminates Instr.
type InstrKind uint8

const (
	InstrAlloca InstrKind = iota
	InstrLoad
	InstrStore
	InstrBin
	InstrCall
	InstrAddrSpaceCast
)

// AllocaInstr reserves stack storage in an address space.
type AllocaInstr struct {
	Dst       LocalID
	Ty        Type
	AddrSpace uint32
}

// LoadInstr reads through a pointer operand.
type LoadInstr struct {
	Dst  LocalID
	Addr Operand
	Ty   Type
}

// StoreInstr writes through a pointer operand.
type StoreInstr struct {
	Addr Operand
	Val  Operand
}

// BinInstr computes a two-operand operation.
type BinInstr struct {
	Dst LocalID
	Op  BinOp
	LHS Operand
	RHS Operand
}

// CallInstr calls a function by name. HasDst is false for void calls.
type CallInstr struct {
	Dst    LocalID
	HasDst bool
	Callee string
	Args   []Operand
}

// AddrSpaceCastInstr reinterprets a pointer in another address space.
type AddrSpaceCastInstr struct {
	Dst LocalID
	Src Operand
	To  uint32
}

// Instr is one instruction; Kind selects the populated payload.
type Instr struct {
	Kind   InstrKind
	Alloca AllocaInstr
	Load   LoadInstr
	Store  StoreInstr
	Bin    BinInstr
	Call   CallInstr
	Cast   AddrSpaceCastInstr
}
