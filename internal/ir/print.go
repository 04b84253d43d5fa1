package ir

import (
	"fmt"
	"io"
	"slices"
	"sort"
)

// DumpOptions configures module dumping.
type DumpOptions struct{}

// DumpModule writes a human-readable representation of a module.
// The dump is stable across runs so it can be diffed between stages.
func DumpModule(w io.Writer, m *Module, _ DumpOptions) error {
	if w == nil || m == nil {
		return nil
	}

	fmt.Fprintf(w, "module %s triple=%q\n", m.Name, m.Triple)

	if len(m.Metadata) > 0 {
		names := make([]string, 0, len(m.Metadata))
		for name := range m.Metadata {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "metadata %s:\n", name)
			for _, ann := range m.Metadata[name] {
				fmt.Fprintf(w, "  (%s, %q, %d)\n", ann.Func, ann.Kind, ann.Marker)
			}
		}
	}

	if len(m.Globals) > 0 {
		fmt.Fprintf(w, "globals=%d\n", len(m.Globals))
		for i := range m.Globals {
			g := m.Globals[i]
			flags := ""
			if g.IsConst {
				flags = " const"
			}
			fmt.Fprintf(w, "  G%d: %s as=%d%s name=%s\n", i, g.Type, g.AddrSpace, flags, g.Name)
		}
	}

	funcs := make([]*Func, 0, len(m.Funcs))
	for _, f := range m.Funcs {
		if f != nil {
			funcs = append(funcs, f)
		}
	}
	slices.SortStableFunc(funcs, func(a, b *Func) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})

	fmt.Fprintf(w, "funcs=%d\n", len(funcs))
	for _, f := range funcs {
		if err := dumpFunc(w, f); err != nil {
			return err
		}
	}
	return nil
}

func dumpFunc(w io.Writer, f *Func) error {
	if f.IsDecl() {
		fmt.Fprintf(w, "\ndeclare %s %s\n", f.Linkage, f.Name)
		return nil
	}
	fmt.Fprintf(w, "\nfn %s %s:\n", f.Linkage, f.Name)

	if len(f.Locals) > 0 {
		fmt.Fprintf(w, "  locals:\n")
		for i := range f.Locals {
			l := f.Locals[i]
			name := l.Name
			if name == "" {
				name = "_"
			}
			fmt.Fprintf(w, "    L%d: %s name=%s\n", i, l.Type, name)
		}
	}

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		fmt.Fprintf(w, "  bb%d:\n", bb.ID)
		for j := range bb.Instrs {
			fmt.Fprintf(w, "    %s\n", formatInstr(&bb.Instrs[j]))
		}
		fmt.Fprintf(w, "    %s\n", formatTerm(bb.Term))
	}
	return nil
}

func formatInstr(in *Instr) string {
	switch in.Kind {
	case InstrAlloca:
		return fmt.Sprintf("L%d = alloca %s as=%d", in.Alloca.Dst, in.Alloca.Ty, in.Alloca.AddrSpace)
	case InstrLoad:
		return fmt.Sprintf("L%d = load %s %s", in.Load.Dst, in.Load.Ty, formatOperand(in.Load.Addr))
	case InstrStore:
		return fmt.Sprintf("store %s <- %s", formatOperand(in.Store.Addr), formatOperand(in.Store.Val))
	case InstrBin:
		return fmt.Sprintf("L%d = %s %s, %s", in.Bin.Dst, in.Bin.Op, formatOperand(in.Bin.LHS), formatOperand(in.Bin.RHS))
	case InstrCall:
		args := ""
		for i, a := range in.Call.Args {
			if i > 0 {
				args += ", "
			}
			args += formatOperand(a)
		}
		if in.Call.HasDst {
			return fmt.Sprintf("L%d = call %s(%s)", in.Call.Dst, in.Call.Callee, args)
		}
		return fmt.Sprintf("call %s(%s)", in.Call.Callee, args)
	case InstrAddrSpaceCast:
		return fmt.Sprintf("L%d = addrspacecast %s to as=%d", in.Cast.Dst, formatOperand(in.Cast.Src), in.Cast.To)
	default:
		return "unknown"
	}
}

func formatTerm(t Terminator) string {
	switch t.Kind {
	case TermGoto:
		return fmt.Sprintf("goto bb%d", t.Goto.Target)
	case TermBranch:
		return fmt.Sprintf("br %s bb%d bb%d", formatOperand(t.Branch.Cond), t.Branch.Then, t.Branch.Else)
	case TermReturn:
		if t.Return.HasValue {
			return fmt.Sprintf("ret %s", formatOperand(t.Return.Value))
		}
		return "ret"
	default:
		return "unterminated"
	}
}

func formatOperand(op Operand) string {
	switch op.Kind {
	case OperandLocal:
		return fmt.Sprintf("L%d", op.Local)
	case OperandConst:
		if op.Const.Kind == ConstFloat {
			return fmt.Sprintf("%g", op.Const.FloatVal)
		}
		return fmt.Sprintf("%d", op.Const.IntValue)
	case OperandGlobal:
		return "@" + op.Global
	default:
		return "?"
	}
}
