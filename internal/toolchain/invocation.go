package toolchain

// DefaultDriver is the external compiler driver the backend invokes.
const DefaultDriver = "clang"

// CPUGeneric as the microarchitecture means "do not pass an explicit
// -target-cpu flag; let the driver pick".
const CPUGeneric = "generic"

// Invocation describes one ahead-of-time compilation of serialized IR
// into assembly text.
type Invocation struct {
	Driver string
	Triple string
	CPU    string // "generic" omits the microarchitecture flag
	Input  string
	Output string
}

// Args builds the argument vector, driver excluded:
//
//	-cc1 -triple <triple> -O3 -S -x ir -o <output> [-target-cpu <cpu>] <input>
func (inv Invocation) Args() []string {
	args := []string{
		"-cc1",
		"-triple", inv.Triple,
		"-O3",
		"-S",
		"-x", "ir",
		"-o", inv.Output,
	}
	if inv.CPU != "" && inv.CPU != CPUGeneric {
		args = append(args, "-target-cpu", inv.CPU)
	}
	return append(args, inv.Input)
}
