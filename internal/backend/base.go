package backend

import (
	"os"

	"sscp/internal/diag"
	"sscp/internal/ir"
)

// Base carries the translator state every target variant shares: the
// configured entry-point names and the per-instance error sink. Target
// packages compose it rather than reimplementing the skeleton.
type Base struct {
	kernelNames []string
	errs        diag.Sink
}

// NewBase returns a Base fixed to the given entry-point names.
func NewBase(kernelNames []string) Base {
	names := make([]string, len(kernelNames))
	copy(names, kernelNames)
	return Base{kernelNames: names}
}

// KernelNames returns the configured entry-point names.
func (b *Base) KernelNames() []string {
	return b.kernelNames
}

// IsKernelName reports whether name is one of the configured entry points.
func (b *Base) IsKernelName(name string) bool {
	for _, n := range b.kernelNames {
		if n == name {
			return true
		}
	}
	return false
}

// RegisterError appends one message to the error sink.
func (b *Base) RegisterError(msg string) {
	b.errs.Append(msg)
}

// Errors returns the accumulated error messages in arrival order.
func (b *Base) Errors() []string {
	return b.errs.Messages()
}

// AnnotateKernels attaches an entry-point annotation to every configured
// kernel name that resolves to a function in m and forces that
// function's linkage to externally visible. Names with no matching
// function are skipped.
func (b *Base) AnnotateKernels(m *ir.Module) {
	for _, name := range b.kernelNames {
		f := m.Find(name)
		if f == nil {
			continue
		}
		m.Annotate(ir.KernelAnnotations, ir.Annotation{
			Func:   f.Name,
			Kind:   ir.KernelAnnotationKind,
			Marker: ir.KernelAnnotationMarker,
		})
		f.Linkage = ir.LinkExternal
	}
}

// LinkBitcodeFile links the builtin library at path into m. On failure
// an error is registered and false returned.
func (b *Base) LinkBitcodeFile(m *ir.Module, path string) bool {
	if _, err := os.Stat(path); err != nil {
		b.errs.Appendf("could not find builtin bitcode library %s: %v", path, err)
		return false
	}
	lib, err := ir.ReadModuleFile(path)
	if err != nil {
		b.errs.Appendf("could not load builtin bitcode library %s: %v", path, err)
		return false
	}
	if err := ir.LinkModules(m, lib); err != nil {
		b.errs.Appendf("could not link builtin bitcode library %s: %v", path, err)
		return false
	}
	return true
}
