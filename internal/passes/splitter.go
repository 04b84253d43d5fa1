package passes

import "sscp/internal/ir"

// SplitterAnnotationAnalysisName registers the kernel-annotation lookup.
const SplitterAnnotationAnalysisName = "splitter-annotation"

// SplitterAnnotation is the computed kernel set of a module, derived
// from its entry-point annotation collection.
type SplitterAnnotation struct {
	kernels map[string]bool
}

// IsKernel reports whether the named function is an annotated entry point.
func (s *SplitterAnnotation) IsKernel(name string) bool {
	return s != nil && s.kernels[name]
}

// SplitterAnnotationAnalysis builds the kernel set from the module's
// kernel annotation collection.
func SplitterAnnotationAnalysis(m *ir.Module) (any, error) {
	kernels := make(map[string]bool)
	for _, ann := range m.Annotations(ir.KernelAnnotations) {
		if ann.Kind == ir.KernelAnnotationKind {
			kernels[ann.Func] = true
		}
	}
	return &SplitterAnnotation{kernels: kernels}, nil
}

// RegisterSplitterAnnotationAnalysis installs the analysis under its
// well-known name.
func RegisterSplitterAnnotationAnalysis(am *AnalysisManager) {
	am.Register(SplitterAnnotationAnalysisName, SplitterAnnotationAnalysis)
}

func splitterAnnotationOf(am *AnalysisManager, m *ir.Module) (*SplitterAnnotation, error) {
	res, err := am.Get(SplitterAnnotationAnalysisName, m)
	if err != nil {
		return nil, err
	}
	sa, ok := res.(*SplitterAnnotation)
	if !ok {
		return nil, &UnknownAnalysisError{Name: SplitterAnnotationAnalysisName}
	}
	return sa, nil
}
