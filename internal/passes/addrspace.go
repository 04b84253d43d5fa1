package passes

import "sscp/internal/ir"

// AddressSpaceInferencePass rewrites every address-space-qualified type
// and instruction from the logical numbering to the target scheme in Map.
type AddressSpaceInferencePass struct {
	Map ir.AddressSpaceMap
}

func (AddressSpaceInferencePass) Name() string { return "address-space-inference" }

func (p AddressSpaceInferencePass) Run(m *ir.Module, _ *AnalysisManager) error {
	for i := range m.Globals {
		g := &m.Globals[i]
		g.AddrSpace = p.Map.For(g.AddrSpace)
		p.rewriteType(&g.Type)
	}
	for _, f := range m.Funcs {
		if f == nil {
			continue
		}
		p.rewriteFunc(f)
	}
	return nil
}

func (p AddressSpaceInferencePass) rewriteFunc(f *ir.Func) {
	for i := range f.Params {
		p.rewriteType(&f.Params[i].Type)
	}
	p.rewriteType(&f.Result)
	for i := range f.Locals {
		p.rewriteType(&f.Locals[i].Type)
	}
	for bi := range f.Blocks {
		bb := &f.Blocks[bi]
		for ii := range bb.Instrs {
			p.rewriteInstr(&bb.Instrs[ii])
		}
	}
}

func (p AddressSpaceInferencePass) rewriteInstr(in *ir.Instr) {
	switch in.Kind {
	case ir.InstrAlloca:
		in.Alloca.AddrSpace = p.Map.For(in.Alloca.AddrSpace)
		p.rewriteType(&in.Alloca.Ty)
	case ir.InstrLoad:
		p.rewriteType(&in.Load.Ty)
	case ir.InstrAddrSpaceCast:
		in.Cast.To = p.Map.For(in.Cast.To)
	}
}

func (p AddressSpaceInferencePass) rewriteType(t *ir.Type) {
	for t != nil {
		if t.Kind != ir.TypePtr {
			return
		}
		t.AddrSpace = p.Map.For(t.AddrSpace)
		t = t.Elem
	}
}
