// Package passes implements the module transformation infrastructure
// shared by the backend translators: an explicit pass pipeline, a named
// analysis manager and the passes that adapt target-agnostic kernels for
// a concrete execution target.
package passes

import (
	"fmt"

	"sscp/internal/ir"
	"sscp/internal/trace"
)

// Pass is one in-place module transformation.
type Pass interface {
	Name() string
	Run(m *ir.Module, am *AnalysisManager) error
}

// Pipeline is an ordered pass sequence. It is a plain value so callers
// (and tests) can substitute their own sequence instead of the default.
type Pipeline []Pass

// Run executes the passes in order, stopping at the first failure.
// Each pass runs under its own pass-scope span on tr.
func (p Pipeline) Run(tr trace.Tracer, m *ir.Module, am *AnalysisManager) error {
	for _, pass := range p {
		span := trace.Begin(tr, trace.ScopePass, pass.Name())
		if err := pass.Run(m, am); err != nil {
			span.End("failed")
			return fmt.Errorf("pass %s: %w", pass.Name(), err)
		}
		span.End("")
		am.Invalidate()
	}
	return nil
}

// Handler bundles the pass-execution context a caller hands to a
// translator: the analysis manager, the builder used to register
// target-specific analyses before the pipeline runs, and the tracer
// that receives per-pass spans.
type Handler struct {
	Analyses *AnalysisManager
	Builder  *Builder
	Tracer   trace.Tracer
}

// NewHandler returns a Handler with empty manager and builder and a nop
// tracer.
func NewHandler() *Handler {
	return &Handler{
		Analyses: NewAnalysisManager(),
		Builder:  &Builder{},
		Tracer:   trace.Nop,
	}
}
