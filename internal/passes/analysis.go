package passes

import "sscp/internal/ir"

// AnalysisCtor computes one analysis result for a module.
type AnalysisCtor func(m *ir.Module) (any, error)

// AnalysisManager holds registered analyses and caches their results
// until a pass invalidates them.
type AnalysisManager struct {
	ctors map[string]AnalysisCtor
	cache map[string]any
}

// NewAnalysisManager returns an empty manager.
func NewAnalysisManager() *AnalysisManager {
	return &AnalysisManager{
		ctors: make(map[string]AnalysisCtor),
		cache: make(map[string]any),
	}
}

// Register installs an analysis under a name. Re-registering replaces
// the constructor and drops any cached result.
func (am *AnalysisManager) Register(name string, ctor AnalysisCtor) {
	am.ctors[name] = ctor
	delete(am.cache, name)
}

// Get returns the (possibly cached) analysis result for m.
func (am *AnalysisManager) Get(name string, m *ir.Module) (any, error) {
	if res, ok := am.cache[name]; ok {
		return res, nil
	}
	ctor, ok := am.ctors[name]
	if !ok {
		return nil, &UnknownAnalysisError{Name: name}
	}
	res, err := ctor(m)
	if err != nil {
		return nil, err
	}
	am.cache[name] = res
	return res, nil
}

// Invalidate drops all cached results. Run after a pass mutates the module.
func (am *AnalysisManager) Invalidate() {
	clear(am.cache)
}

// UnknownAnalysisError reports a Get for an unregistered analysis.
type UnknownAnalysisError struct {
	Name string
}

func (e *UnknownAnalysisError) Error() string {
	return "unknown analysis " + e.Name
}
