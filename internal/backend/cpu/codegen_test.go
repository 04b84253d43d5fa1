package cpu_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sscp/internal/backend/cpu"
	"sscp/internal/ir"
)

// fakeRunner stands in for the external toolchain driver. On a zero exit
// code it writes assembly to the invocation's -o path, like the real
// driver would.
type fakeRunner struct {
	lookPathErr error
	exitCode    int
	runErr      error
	assembly    string

	gotName string
	gotArgs []string
}

func (r *fakeRunner) LookPath(name string) (string, error) {
	if r.lookPathErr != nil {
		return "", r.lookPathErr
	}
	return "/opt/toolchain/bin/" + name, nil
}

func (r *fakeRunner) Run(_ context.Context, name string, args []string) (int, error) {
	r.gotName = name
	r.gotArgs = append([]string(nil), args...)
	if r.exitCode == 0 {
		out := argAfter(args, "-o")
		if out != "" {
			if err := os.WriteFile(out, []byte(r.assembly), 0o600); err != nil {
				return -1, err
			}
		}
	}
	return r.exitCode, r.runErr
}

func argAfter(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func newTranslatorWithRunner(t *testing.T, r *fakeRunner) *cpu.Translator {
	t.Helper()
	tr := cpu.New(nil)
	tr.Runner = r
	tr.DumpPath = filepath.Join(t.TempDir(), "dump.ir")
	tr.ApplyBuildOption("triple", "x86_64-unknown-linux-gnu")
	return tr
}

func emptyModule() *ir.Module {
	return &ir.Module{Name: "unit"}
}

func TestTranslateToBackendFormat_Success(t *testing.T) {
	runner := &fakeRunner{assembly: "\t.text\n\tretq\n"}
	tr := newTranslatorWithRunner(t, runner)
	tr.ApplyBuildOption("cpu", "skylake")

	var out string
	if !tr.TranslateToBackendFormat(emptyModule(), &out) {
		t.Fatalf("translation failed: %v", tr.Errors())
	}
	if out != runner.assembly {
		t.Fatalf("assembly not read back: %q", out)
	}

	// The invocation carries the cc1 shape and the target options.
	if runner.gotArgs[0] != "-cc1" {
		t.Fatalf("first arg is %q, want -cc1", runner.gotArgs[0])
	}
	if got := argAfter(runner.gotArgs, "-triple"); got != "x86_64-unknown-linux-gnu" {
		t.Fatalf("wrong -triple: %q", got)
	}
	if got := argAfter(runner.gotArgs, "-target-cpu"); got != "skylake" {
		t.Fatalf("wrong -target-cpu: %q", got)
	}
	if !strings.HasPrefix(runner.gotName, "/opt/toolchain/bin/") {
		t.Fatalf("driver not resolved through LookPath: %q", runner.gotName)
	}

	// Both temp files are gone.
	assertTempsRemoved(t, runner.gotArgs)
}

func TestTranslateToBackendFormat_GenericCPUOmitsFlag(t *testing.T) {
	runner := &fakeRunner{assembly: "\t.text\n"}
	tr := newTranslatorWithRunner(t, runner)
	tr.ApplyBuildOption("cpu", "generic")

	var out string
	if !tr.TranslateToBackendFormat(emptyModule(), &out) {
		t.Fatalf("translation failed: %v", tr.Errors())
	}
	if hasFlag(runner.gotArgs, "-target-cpu") {
		t.Fatalf("generic must omit -target-cpu: %v", runner.gotArgs)
	}
}

func TestTranslateToBackendFormat_NonZeroExit(t *testing.T) {
	runner := &fakeRunner{exitCode: 2, runErr: errors.New("clang: error: invalid ir")}
	tr := newTranslatorWithRunner(t, runner)

	out := "sentinel"
	if tr.TranslateToBackendFormat(emptyModule(), &out) {
		t.Fatalf("translation succeeded despite exit code 2")
	}
	if out != "sentinel" {
		t.Fatalf("output modified on failure: %q", out)
	}
	errs := tr.Errors()
	if len(errs) == 0 || !strings.Contains(errs[len(errs)-1], "exit code 2") {
		t.Fatalf("error does not carry the exit code: %v", errs)
	}
	assertTempsRemoved(t, runner.gotArgs)
}

func TestTranslateToBackendFormat_DriverNotFound(t *testing.T) {
	runner := &fakeRunner{lookPathErr: errors.New("executable file not found in $PATH")}
	tr := newTranslatorWithRunner(t, runner)
	tr.Driver = "clang-19"

	var out string
	if tr.TranslateToBackendFormat(emptyModule(), &out) {
		t.Fatalf("translation succeeded without a driver")
	}
	errs := tr.Errors()
	if len(errs) == 0 || !strings.Contains(errs[len(errs)-1], "clang-19") {
		t.Fatalf("error does not name the driver: %v", errs)
	}
	if out != "" {
		t.Fatalf("output modified on failure: %q", out)
	}
}

func TestTranslateToBackendFormat_LaunchFailure(t *testing.T) {
	runner := &fakeRunner{exitCode: -1, runErr: errors.New("fork failed")}
	tr := newTranslatorWithRunner(t, runner)

	var out string
	if tr.TranslateToBackendFormat(emptyModule(), &out) {
		t.Fatalf("translation succeeded despite launch failure")
	}
	errs := tr.Errors()
	if len(errs) == 0 || !strings.Contains(errs[len(errs)-1], "fork failed") {
		t.Fatalf("error does not carry the launch failure: %v", errs)
	}
}

// assertTempsRemoved checks that neither exchange file named in the
// invocation survived the call.
func assertTempsRemoved(t *testing.T, args []string) {
	t.Helper()
	if len(args) == 0 {
		t.Fatalf("runner was never invoked")
	}
	in := args[len(args)-1]
	out := argAfter(args, "-o")
	for _, p := range []string{in, out} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Fatalf("temp file %s not removed (err=%v)", p, err)
		}
	}
}
