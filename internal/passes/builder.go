package passes

// OptLevel selects how aggressively the flattening pipeline cleans up
// control flow around the work-item loop.
type OptLevel uint8

const (
	O0 OptLevel = iota
	O3
)

// Builder collects analysis registrations before a pipeline runs.
// Translators register their target-specific analyses through callbacks
// so the same analysis manager can serve several pipelines.
type Builder struct {
	callbacks []func(*AnalysisManager)
}

// RegisterAnalysisRegistrationCallback defers an analysis registration
// until RegisterModuleAnalyses.
func (b *Builder) RegisterAnalysisRegistrationCallback(cb func(*AnalysisManager)) {
	b.callbacks = append(b.callbacks, cb)
}

// RegisterModuleAnalyses applies all deferred registrations to am.
func (b *Builder) RegisterModuleAnalyses(am *AnalysisManager) {
	for _, cb := range b.callbacks {
		cb(am)
	}
}

// FlatteningPipeline returns the control-flow flattening pipeline for
// the given tier. O3 brackets the work-item loop construction with
// kernel simplification; O0 runs the loop construction alone.
func FlatteningPipeline(level OptLevel) Pipeline {
	if level == O0 {
		return Pipeline{KernelFlatteningPass{}}
	}
	return Pipeline{
		SimplifyKernelPass{},
		KernelFlatteningPass{},
		SimplifyKernelPass{},
	}
}
