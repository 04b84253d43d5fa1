package ir

import (
	"errors"
	"fmt"
)

// Validate checks module invariants.
// Returns an error if any invariant is violated.
func Validate(m *Module) error {
	if m == nil {
		return nil
	}
	var errs []error
	seen := make(map[string]bool, len(m.Funcs))
	for _, f := range m.Funcs {
		if f == nil {
			continue
		}
		if seen[f.Name] {
			errs = append(errs, fmt.Errorf("duplicate function %q", f.Name))
			continue
		}
		seen[f.Name] = true
		if err := validateFunc(f); err != nil {
			errs = append(errs, fmt.Errorf("function %s: %w", f.Name, err))
		}
	}
	return errors.Join(errs...)
}

func validateFunc(f *Func) error {
	if f.IsDecl() {
		return nil
	}
	var errs []error

	if int(f.Entry) >= len(f.Blocks) {
		errs = append(errs, fmt.Errorf("entry bb%d out of range", f.Entry))
	}

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		if bb.Term.Kind == TermNone {
			errs = append(errs, fmt.Errorf("bb%d not terminated", bb.ID))
		}
		for _, succ := range bb.Term.Successors() {
			if int(succ) >= len(f.Blocks) {
				errs = append(errs, fmt.Errorf("bb%d targets missing bb%d", bb.ID, succ))
			}
		}
		for j := range bb.Instrs {
			if err := validateInstr(f, &bb.Instrs[j]); err != nil {
				errs = append(errs, fmt.Errorf("bb%d: %w", bb.ID, err))
			}
		}
	}
	return errors.Join(errs...)
}

func validateInstr(f *Func, in *Instr) error {
	check := func(id LocalID) error {
		if int(id) >= len(f.Locals) {
			return fmt.Errorf("local L%d out of range", id)
		}
		return nil
	}
	checkOp := func(op Operand) error {
		if op.Kind == OperandLocal {
			return check(op.Local)
		}
		return nil
	}
	switch in.Kind {
	case InstrAlloca:
		return check(in.Alloca.Dst)
	case InstrLoad:
		return errors.Join(check(in.Load.Dst), checkOp(in.Load.Addr))
	case InstrStore:
		return errors.Join(checkOp(in.Store.Addr), checkOp(in.Store.Val))
	case InstrBin:
		return errors.Join(check(in.Bin.Dst), checkOp(in.Bin.LHS), checkOp(in.Bin.RHS))
	case InstrCall:
		var errs []error
		if in.Call.HasDst {
			errs = append(errs, check(in.Call.Dst))
		}
		for _, a := range in.Call.Args {
			errs = append(errs, checkOp(a))
		}
		return errors.Join(errs...)
	case InstrAddrSpaceCast:
		return errors.Join(check(in.Cast.Dst), checkOp(in.Cast.Src))
	default:
		return fmt.Errorf("unknown instruction kind %d", in.Kind)
	}
}
