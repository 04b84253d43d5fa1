package cpu

import (
	"context"
	"fmt"
	"os"

	"sscp/internal/ir"
	"sscp/internal/toolchain"
)

// DefaultDumpPath is where the diagnostic dump of the flavored module
// is written before code generation.
const DefaultDumpPath = "sscp-cpu.ir"

// TranslateToBackendFormat serializes the flavored module, invokes the
// external toolchain and stores the generated assembly text in *out.
//
// Both temporary files are removed on every exit path. On failure *out
// is left unmodified, an error is registered and false returned.
func (t *Translator) TranslateToBackendFormat(m *ir.Module, out *string) bool {
	t.dumpFlavoredModule(m)

	input, err := toolchain.CreateTemp("sscp-cpu-*.bc")
	if err != nil {
		t.RegisterError("cpu: could not create temp file: " + err.Error())
		return false
	}
	output, err := toolchain.CreateTemp("sscp-cpu-*.s")
	if err != nil {
		input.Discard()
		t.RegisterError("cpu: could not create temp file: " + err.Error())
		return false
	}
	defer input.Discard()
	defer output.Discard()

	if err := ir.WriteModuleFile(input.Name, m); err != nil {
		t.RegisterError("cpu: could not serialize module: " + err.Error())
		return false
	}

	driver := t.Driver
	if driver == "" {
		driver = toolchain.DefaultDriver
	}
	driverPath, err := t.Runner.LookPath(driver)
	if err != nil {
		t.RegisterError(fmt.Sprintf("cpu: could not find toolchain driver %q: %v", driver, err))
		return false
	}

	inv := toolchain.Invocation{
		Driver: driverPath,
		Triple: t.triple,
		CPU:    t.mcpu,
		Input:  input.Name,
		Output: output.Name,
	}

	code, runErr := t.Runner.Run(context.Background(), driverPath, inv.Args())
	if code < 0 {
		t.RegisterError(fmt.Sprintf("cpu: could not launch toolchain driver %q: %v", driverPath, runErr))
		return false
	}
	if code != 0 {
		t.RegisterError(fmt.Sprintf("cpu: toolchain invocation failed with exit code %d", code))
		return false
	}

	data, err := os.ReadFile(output.Name)
	if err != nil {
		t.RegisterError("cpu: could not read result file: " + err.Error())
		return false
	}
	*out = string(data)
	return true
}

// dumpFlavoredModule writes the human-readable dump used for debugging.
// Failure here is deliberately ignored; the dump is not part of the
// translation contract.
func (t *Translator) dumpFlavoredModule(m *ir.Module) {
	path := t.DumpPath
	if path == "" {
		path = DefaultDumpPath
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	_ = ir.DumpModule(f, m, ir.DumpOptions{})
	_ = f.Close()
}
