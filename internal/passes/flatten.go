package passes

import (
	"fmt"

	"fortio.org/safecast"

	"sscp/internal/ir"
)

// KernelFlatteningPass converts each annotated kernel, written for
// independent parallel work-items, into a host-executable form with an
// explicit work-item loop: a counter slot drives the original body, the
// work-item-id intrinsic becomes a read of the counter, and the trip
// count comes from the num-work-items intrinsic.
type KernelFlatteningPass struct{}

func (KernelFlatteningPass) Name() string { return "kernel-flattening" }

func (p KernelFlatteningPass) Run(m *ir.Module, am *AnalysisManager) error {
	sa, err := splitterAnnotationOf(am, m)
	if err != nil {
		return err
	}
	for _, f := range m.Funcs {
		if f == nil || f.IsDecl() || !sa.IsKernel(f.Name) {
			continue
		}
		if err := p.flatten(f); err != nil {
			return fmt.Errorf("kernel %s: %w", f.Name, err)
		}
	}
	return nil
}

func (p KernelFlatteningPass) flatten(f *ir.Func) error {
	origBlocks, err := safecast.Conv[uint32](len(f.Blocks))
	if err != nil {
		return err
	}
	bodyEntry := f.Entry

	// Counter slot and loop-carried values. Allocas land in the flat
	// default space; address-space inference has already run.
	slot := f.AddLocal("__wi.slot", ir.Ptr(ir.I64(), 0))
	count := f.AddLocal("__wi.count", ir.I64())
	cur := f.AddLocal("__wi.cur", ir.I64())
	cond := f.AddLocal("__wi.cond", ir.I1())
	next := f.AddLocal("__wi.next", ir.I64())

	preheader := f.AddBlock()
	header := f.AddBlock()
	latch := f.AddBlock()
	exit := f.AddBlock()

	// Original returns leave one iteration, not the kernel.
	for i := uint32(0); i < origBlocks; i++ {
		bb := &f.Blocks[i]
		if bb.Term.Kind == ir.TermReturn {
			bb.Term = ir.Terminator{Kind: ir.TermGoto, Goto: ir.GotoTerm{Target: latch}}
		}
		for j := range bb.Instrs {
			in := &bb.Instrs[j]
			if in.Kind == ir.InstrCall && in.Call.Callee == ir.WorkItemIDFn && in.Call.HasDst {
				*in = ir.Instr{Kind: ir.InstrLoad, Load: ir.LoadInstr{
					Dst:  in.Call.Dst,
					Addr: ir.LocalOp(slot),
					Ty:   ir.I64(),
				}}
			}
		}
	}

	pre := f.Block(preheader)
	pre.Instrs = []ir.Instr{
		{Kind: ir.InstrAlloca, Alloca: ir.AllocaInstr{Dst: slot, Ty: ir.I64()}},
		{Kind: ir.InstrStore, Store: ir.StoreInstr{Addr: ir.LocalOp(slot), Val: ir.IntOp(0)}},
		{Kind: ir.InstrCall, Call: ir.CallInstr{Dst: count, HasDst: true, Callee: ir.NumWorkItemsFn}},
	}
	pre.Term = ir.Terminator{Kind: ir.TermGoto, Goto: ir.GotoTerm{Target: header}}

	hdr := f.Block(header)
	hdr.Instrs = []ir.Instr{
		{Kind: ir.InstrLoad, Load: ir.LoadInstr{Dst: cur, Addr: ir.LocalOp(slot), Ty: ir.I64()}},
		{Kind: ir.InstrBin, Bin: ir.BinInstr{Dst: cond, Op: ir.BinLt, LHS: ir.LocalOp(cur), RHS: ir.LocalOp(count)}},
	}
	hdr.Term = ir.Terminator{Kind: ir.TermBranch, Branch: ir.BranchTerm{
		Cond: ir.LocalOp(cond),
		Then: bodyEntry,
		Else: exit,
	}}

	lt := f.Block(latch)
	lt.Instrs = []ir.Instr{
		{Kind: ir.InstrLoad, Load: ir.LoadInstr{Dst: cur, Addr: ir.LocalOp(slot), Ty: ir.I64()}},
		{Kind: ir.InstrBin, Bin: ir.BinInstr{Dst: next, Op: ir.BinAdd, LHS: ir.LocalOp(cur), RHS: ir.IntOp(1)}},
		{Kind: ir.InstrStore, Store: ir.StoreInstr{Addr: ir.LocalOp(slot), Val: ir.LocalOp(next)}},
	}
	lt.Term = ir.Terminator{Kind: ir.TermGoto, Goto: ir.GotoTerm{Target: header}}

	f.Block(exit).Term = ir.Terminator{Kind: ir.TermReturn, Return: ir.ReturnTerm{}}

	f.Entry = preheader
	return nil
}
