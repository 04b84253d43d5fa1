package ir_test

import (
	"testing"

	"sscp/internal/ir"
)

func retVoidFunc(name string) *ir.Func {
	f := &ir.Func{Name: name}
	bb := f.AddBlock()
	f.Blocks[bb].Term = ir.Terminator{Kind: ir.TermReturn}
	return f
}

// TestLinkModules_ResolvesDeclarations tests that a definition from the
// library replaces a matching declaration in the destination module.
func TestLinkModules_ResolvesDeclarations(t *testing.T) {
	dst := &ir.Module{
		Name:  "app",
		Funcs: []*ir.Func{{Name: "helper"}},
	}
	lib := &ir.Module{
		Name:  "builtins",
		Funcs: []*ir.Func{retVoidFunc("helper"), retVoidFunc("unused")},
	}

	if err := ir.LinkModules(dst, lib); err != nil {
		t.Fatalf("link failed: %v", err)
	}

	helper := dst.Find("helper")
	if helper == nil || helper.IsDecl() {
		t.Fatalf("declaration of helper was not resolved")
	}
	unused := dst.Find("unused")
	if unused == nil {
		t.Fatalf("library symbol unused was not appended")
	}
	if unused.Linkage != ir.LinkInternal {
		t.Fatalf("appended library symbol should be internal, got %s", unused.Linkage)
	}
}

// TestLinkModules_DuplicateDefinition tests that two bodies for the
// same name are rejected.
func TestLinkModules_DuplicateDefinition(t *testing.T) {
	dst := &ir.Module{Funcs: []*ir.Func{retVoidFunc("f")}}
	lib := &ir.Module{Funcs: []*ir.Func{retVoidFunc("f")}}

	if err := ir.LinkModules(dst, lib); err == nil {
		t.Fatalf("expected duplicate definition error")
	}
}

// TestLinkModules_KeepsExternalLinkage tests that linking does not
// downgrade an already-external destination function.
func TestLinkModules_KeepsExternalLinkage(t *testing.T) {
	kernel := retVoidFunc("kernel")
	kernel.Linkage = ir.LinkExternal
	dst := &ir.Module{Funcs: []*ir.Func{kernel}}
	lib := &ir.Module{Funcs: []*ir.Func{retVoidFunc("other")}}

	if err := ir.LinkModules(dst, lib); err != nil {
		t.Fatalf("link failed: %v", err)
	}
	if dst.Find("kernel").Linkage != ir.LinkExternal {
		t.Fatalf("kernel linkage changed during link")
	}
}
