package passes

import "sscp/internal/ir"

// SimplifyKernelPass performs control flow cleanup on every function body.
// Transformations:
// 1. Remove trivial goto blocks (0 instructions + goto terminator)
// 2. Collapse goto chains
// 3. Remove unreachable blocks
// 4. Renumber blocks deterministically
type SimplifyKernelPass struct{}

func (SimplifyKernelPass) Name() string { return "simplify-kernel" }

func (SimplifyKernelPass) Run(m *ir.Module, _ *AnalysisManager) error {
	for _, f := range m.Funcs {
		if f == nil || f.IsDecl() {
			continue
		}
		simplifyFunc(f)
	}
	return nil
}

func simplifyFunc(f *ir.Func) {
	if len(f.Blocks) == 0 {
		return
	}
	redirects := buildRedirectMap(f)
	applyRedirects(f, redirects)
	reachable := computeReachability(f)
	compactBlocks(f, reachable)
}

// buildRedirectMap finds all trivial goto blocks and maps their IDs to
// their final targets, following chains.
func buildRedirectMap(f *ir.Func) map[ir.BlockID]ir.BlockID {
	redirects := make(map[ir.BlockID]ir.BlockID)

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		if len(bb.Instrs) != 0 || bb.Term.Kind != ir.TermGoto {
			continue
		}
		target := bb.Term.Goto.Target
		visited := make(map[ir.BlockID]bool)
		for !visited[target] {
			visited[target] = true
			if next, ok := redirects[target]; ok {
				target = next
				continue
			}
			if isTrivialGotoBlock(f, target) {
				target = f.Blocks[target].Term.Goto.Target
				continue
			}
			break
		}
		redirects[bb.ID] = target
	}
	return redirects
}

func isTrivialGotoBlock(f *ir.Func, id ir.BlockID) bool {
	if int(id) >= len(f.Blocks) {
		return false
	}
	bb := &f.Blocks[id]
	return len(bb.Instrs) == 0 && bb.Term.Kind == ir.TermGoto
}

func applyRedirects(f *ir.Func, redirects map[ir.BlockID]ir.BlockID) {
	if len(redirects) == 0 {
		return
	}
	redirect := func(id ir.BlockID) ir.BlockID {
		if newID, ok := redirects[id]; ok {
			return newID
		}
		return id
	}
	for i := range f.Blocks {
		term := &f.Blocks[i].Term
		switch term.Kind {
		case ir.TermGoto:
			term.Goto.Target = redirect(term.Goto.Target)
		case ir.TermBranch:
			term.Branch.Then = redirect(term.Branch.Then)
			term.Branch.Else = redirect(term.Branch.Else)
		}
	}
	f.Entry = redirect(f.Entry)
}

func computeReachability(f *ir.Func) []bool {
	reachable := make([]bool, len(f.Blocks))

	var visit func(id ir.BlockID)
	visit = func(id ir.BlockID) {
		if int(id) >= len(f.Blocks) || reachable[id] {
			return
		}
		reachable[id] = true
		for _, succ := range f.Blocks[id].Term.Successors() {
			visit(succ)
		}
	}

	visit(f.Entry)
	return reachable
}

// compactBlocks removes unreachable blocks and renumbers the rest.
func compactBlocks(f *ir.Func, reachable []bool) {
	remap := make(map[ir.BlockID]ir.BlockID, len(f.Blocks))
	kept := f.Blocks[:0]
	for i := range f.Blocks {
		if !reachable[i] {
			continue
		}
		newID := ir.BlockID(len(kept))
		remap[f.Blocks[i].ID] = newID
		f.Blocks[i].ID = newID
		kept = append(kept, f.Blocks[i])
	}
	f.Blocks = kept

	redirect := func(id ir.BlockID) ir.BlockID {
		if newID, ok := remap[id]; ok {
			return newID
		}
		return id
	}
	for i := range f.Blocks {
		term := &f.Blocks[i].Term
		switch term.Kind {
		case ir.TermGoto:
			term.Goto.Target = redirect(term.Goto.Target)
		case ir.TermBranch:
			term.Branch.Then = redirect(term.Branch.Then)
			term.Branch.Else = redirect(term.Branch.Else)
		}
	}
	f.Entry = redirect(f.Entry)
}
