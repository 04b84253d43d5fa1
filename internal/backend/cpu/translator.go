// Package cpu implements the CPU backend translator: it flavors a
// target-agnostic module for sequential/vectorized host execution and
// drives the external toolchain that turns it into native assembly.
package cpu

import (
	"sscp/internal/backend"
	"sscp/internal/install"
	"sscp/internal/ir"
	"sscp/internal/passes"
	"sscp/internal/toolchain"
)

// TargetName selects the builtin bitcode library variant.
const TargetName = "cpu"

// Translator is the CPU backend translator. Construct it with New; the
// zero value is not usable. One instance serves one compilation unit
// and is not safe for concurrent use; independent instances may run
// concurrently.
type Translator struct {
	backend.Base

	triple string
	mcpu   string

	// FlattenPipeline is the control-flow flattening part of the
	// flavoring pipeline. New installs the default O3 pipeline; tests
	// may substitute a minimal one.
	FlattenPipeline passes.Pipeline

	// Runner executes the external toolchain. Defaults to ExecRunner.
	Runner toolchain.Runner

	// Driver is the toolchain driver name or path. Empty means clang.
	Driver string

	// InstallRoot overrides installation-root discovery. Empty means
	// discover from the environment.
	InstallRoot string

	// DumpPath receives the diagnostic dump of the flavored module.
	// Empty means DefaultDumpPath.
	DumpPath string
}

var _ backend.Translator = (*Translator)(nil)

// New constructs a CPU translator for the given entry-point names.
// Target triple and microarchitecture default to the host environment.
func New(kernelNames []string) *Translator {
	return &Translator{
		Base:            backend.NewBase(kernelNames),
		triple:          toolchain.HostTriple(),
		mcpu:            toolchain.HostCPU(),
		FlattenPipeline: passes.FlatteningPipeline(passes.O3),
		Runner:          toolchain.ExecRunner{},
	}
}

// ApplyBuildOption recognizes "triple" and "cpu". Any other key returns
// false and leaves the configuration unchanged.
func (t *Translator) ApplyBuildOption(key, value string) bool {
	switch key {
	case backend.OptionTriple:
		t.triple = value
		return true
	case backend.OptionCPU:
		t.mcpu = value
		return true
	}
	return false
}

// Triple returns the configured target triple.
func (t *Translator) Triple() string { return t.triple }

// CPU returns the configured target microarchitecture.
func (t *Translator) CPU() string { return t.mcpu }

// ToBackendFlavor transforms m in place into the CPU flavor: target
// triple, entry-point annotations and linkage, builtin-library linking,
// then address-space inference and the flattening pipeline.
//
// On failure the module may be partially mutated and must not be
// reused; the translator registers an error and returns false.
func (t *Translator) ToBackendFlavor(m *ir.Module, ph *passes.Handler) bool {
	m.Triple = t.triple

	asMap := t.AddressSpaceMap()

	t.AnnotateKernels(m)

	root := t.InstallRoot
	if root == "" {
		r, err := install.Root()
		if err != nil {
			t.RegisterError("cpu: could not locate installation root: " + err.Error())
			return false
		}
		root = r
	}
	if !t.LinkBitcodeFile(m, install.BuiltinBitcodePath(root, TargetName)) {
		return false
	}

	pipeline := passes.Pipeline{passes.AddressSpaceInferencePass{Map: asMap}}
	pipeline = append(pipeline, t.FlattenPipeline...)

	ph.Builder.RegisterAnalysisRegistrationCallback(func(am *passes.AnalysisManager) {
		passes.RegisterSplitterAnnotationAnalysis(am)
	})
	ph.Builder.RegisterModuleAnalyses(ph.Analyses)

	if err := pipeline.Run(ph.Tracer, m, ph.Analyses); err != nil {
		t.RegisterError("cpu: flavoring pipeline failed: " + err.Error())
		return false
	}
	return true
}

// IsKernelAfterFlavoring reports whether f is a configured entry point.
// Flavoring preserves function names, so this is valid in any state.
func (t *Translator) IsKernelAfterFlavoring(f *ir.Func) bool {
	return f != nil && t.IsKernelName(f.Name)
}

// AddressSpaceMap returns the CPU mapping: host memory is flat, every
// logical category collapses to address space 0.
func (t *Translator) AddressSpaceMap() ir.AddressSpaceMap {
	var m ir.AddressSpaceMap
	return m
}
