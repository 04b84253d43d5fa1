package ir

import "fmt"

// LinkModules merges src into dst. Definitions in src resolve matching
// declarations in dst; symbols unknown to dst are appended. Two bodies
// for the same function name are a conflict.
//
// Linked-in functions keep internal linkage unless dst already marked
// them external, so whole-module optimization can drop unused builtins.
func LinkModules(dst, src *Module) error {
	if dst == nil || src == nil {
		return fmt.Errorf("nil module in link")
	}

	for _, sf := range src.Funcs {
		if sf == nil {
			continue
		}
		df := dst.Find(sf.Name)
		if df == nil {
			cp := *sf
			cp.Linkage = LinkInternal
			dst.Funcs = append(dst.Funcs, &cp)
			continue
		}
		if sf.IsDecl() {
			continue
		}
		if !df.IsDecl() {
			return fmt.Errorf("duplicate definition of %q during link", sf.Name)
		}
		df.Params = sf.Params
		df.Result = sf.Result
		df.Locals = sf.Locals
		df.Blocks = sf.Blocks
		df.Entry = sf.Entry
	}

	for _, sg := range src.Globals {
		if findGlobal(dst, sg.Name) >= 0 {
			continue
		}
		dst.Globals = append(dst.Globals, sg)
	}

	return nil
}

func findGlobal(m *Module, name string) int {
	for i := range m.Globals {
		if m.Globals[i].Name == name {
			return i
		}
	}
	return -1
}
