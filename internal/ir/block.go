package ir

// BlockID indexes Func.Blocks.
type BlockID uint32

// Block is a basic block: straight-line instructions plus one terminator.
type Block struct {
	ID     BlockID
	Instrs []Instr
	Term   Terminator
}

// TermKind discriminates Terminator.
type TermKind uint8

const (
	// TermNone marks an unterminated block; Validate rejects it.
	TermNone TermKind = iota
	TermGoto
	TermBranch
	TermReturn
)

// GotoTerm is an unconditional jump.
type GotoTerm struct {
	Target BlockID
}

// BranchTerm is a conditional jump.
type BranchTerm struct {
	Cond Operand
	Then BlockID
	Else BlockID
}

// ReturnTerm leaves the function.
type ReturnTerm struct {
	HasValue bool
	Value    Operand
}

// Terminator ends a block.
type Terminator struct {
	Kind   TermKind
	Goto   GotoTerm
	Branch BranchTerm
	Return ReturnTerm
}

// Successors returns the blocks this terminator can transfer to.
func (t Terminator) Successors() []BlockID {
	switch t.Kind {
	case TermGoto:
		return []BlockID{t.Goto.Target}
	case TermBranch:
		return []BlockID{t.Branch.Then, t.Branch.Else}
	default:
		return nil
	}
}
