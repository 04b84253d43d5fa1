// Package backend defines the contract shared by all target translators.
// Target-specific packages (cpu, ...) implement Translator on top of the
// shared flavoring skeleton in Base, each supplying its own address-space
// map and toolchain invocation.
package backend

import (
	"sscp/internal/ir"
	"sscp/internal/passes"
)

// Recognized ApplyBuildOption keys.
const (
	OptionTriple = "triple"
	OptionCPU    = "cpu"
)

// Translator converts a target-agnostic module into a form runnable on
// one execution target. A translator is constructed once per compilation
// unit; configuration may change any number of times before flavoring,
// flavoring runs exactly once per module, and code generation runs
// exactly once per flavored module.
//
// Implementations are not safe for concurrent use of one instance;
// independent instances may run concurrently.
type Translator interface {
	// ApplyBuildOption overrides one configuration value. Unrecognized
	// keys return false and leave the configuration unchanged.
	ApplyBuildOption(key, value string) bool

	// ToBackendFlavor transforms m in place into the target's flavor.
	// On failure the module is left in an undefined state and must not
	// be reused; an error is appended to the sink.
	ToBackendFlavor(m *ir.Module, ph *passes.Handler) bool

	// TranslateToBackendFormat serializes the flavored module, invokes
	// the external toolchain and stores the resulting assembly text in
	// *out. On failure *out is left unmodified and an error is appended
	// to the sink.
	TranslateToBackendFormat(m *ir.Module, out *string) bool

	// IsKernelAfterFlavoring reports whether f is one of the configured
	// entry points. Valid in any translation state.
	IsKernelAfterFlavoring(f *ir.Func) bool

	// AddressSpaceMap returns the target's fixed address-space mapping.
	AddressSpaceMap() ir.AddressSpaceMap

	// RegisterError appends one message to the error sink.
	RegisterError(msg string)

	// Errors returns the accumulated error messages in arrival order.
	Errors() []string
}
