package buildpipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sscp/internal/buildpipeline"
	"sscp/internal/install"
	"sscp/internal/ir"
)

// fakeRunner replaces the external toolchain driver: on success it writes
// canned assembly to the -o path of the invocation.
type fakeRunner struct {
	exitCode int
	runErr   error
	assembly string
}

func (r *fakeRunner) LookPath(name string) (string, error) {
	return "/fake/bin/" + name, nil
}

func (r *fakeRunner) Run(_ context.Context, _ string, args []string) (int, error) {
	if r.exitCode == 0 {
		for i, a := range args {
			if a == "-o" && i+1 < len(args) {
				if err := os.WriteFile(args[i+1], []byte(r.assembly), 0o600); err != nil {
					return -1, err
				}
			}
		}
	}
	return r.exitCode, r.runErr
}

// recordSink collects progress events in arrival order.
type recordSink struct {
	events []buildpipeline.Event
}

func (s *recordSink) OnEvent(evt buildpipeline.Event) {
	s.events = append(s.events, evt)
}

func (s *recordSink) last(stage buildpipeline.Stage) (buildpipeline.Event, bool) {
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].Stage == stage {
			return s.events[i], true
		}
	}
	return buildpipeline.Event{}, false
}

// writeInstallRoot creates a fake installation with the CPU builtin
// library and returns the root.
func writeInstallRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	path := install.BuiltinBitcodePath(root, "cpu")
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	count := &ir.Func{Name: ir.NumWorkItemsFn, Result: ir.I64()}
	bb := count.AddBlock()
	count.Blocks[bb].Term = ir.Terminator{Kind: ir.TermReturn, Return: ir.ReturnTerm{
		HasValue: true, Value: ir.IntOp(0),
	}}
	lib := &ir.Module{Name: "builtins", Funcs: []*ir.Func{count}}
	if err := ir.WriteModuleFile(path, lib); err != nil {
		t.Fatalf("write builtin library: %v", err)
	}
	return root
}

// writeInputModule serializes a one-kernel module and returns its path.
func writeInputModule(t *testing.T, dir string) string {
	t.Helper()
	k := &ir.Func{Name: "square"}
	id := k.AddLocal("id", ir.I64())
	bb := k.AddBlock()
	k.Blocks[bb].Instrs = []ir.Instr{
		{Kind: ir.InstrCall, Call: ir.CallInstr{Dst: id, HasDst: true, Callee: ir.WorkItemIDFn}},
	}
	k.Blocks[bb].Term = ir.Terminator{Kind: ir.TermReturn}
	m := &ir.Module{Name: "square", Funcs: []*ir.Func{k}}

	path := filepath.Join(dir, "square.bc")
	if err := ir.WriteModuleFile(path, m); err != nil {
		t.Fatalf("write input module: %v", err)
	}
	return path
}

func TestBuild_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := writeInputModule(t, dir)
	sink := &recordSink{}

	res, err := buildpipeline.Build(context.Background(), &buildpipeline.Request{
		InputPath:   input,
		KernelNames: []string{"square"},
		Triple:      "x86_64-unknown-linux-gnu",
		CPU:         "generic",
		EmitIR:      true,
		InstallRoot: writeInstallRoot(t),
		Runner:      &fakeRunner{assembly: "\t.text\n\tretq\n"},
		Progress:    sink,
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	// Output path derives from the input by extension swap.
	want := filepath.Join(dir, "square.s")
	if res.OutputPath != want {
		t.Fatalf("output path %q, want %q", res.OutputPath, want)
	}
	data, err := os.ReadFile(res.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != res.Assembly || res.Assembly == "" {
		t.Fatalf("assembly on disk does not match result")
	}

	// The flavored-module dump landed next to the output.
	if _, err := os.Stat(res.OutputPath + ".ir"); err != nil {
		t.Fatalf("flavored dump missing: %v", err)
	}

	// Every stage finished and reported done.
	for _, stage := range []buildpipeline.Stage{
		buildpipeline.StageDecode,
		buildpipeline.StageFlavor,
		buildpipeline.StageCodegen,
		buildpipeline.StageWrite,
	} {
		evt, ok := sink.last(stage)
		if !ok || evt.Status != buildpipeline.StatusDone {
			t.Fatalf("stage %s did not report done: %+v", stage, evt)
		}
	}
}

func TestBuild_MissingInput(t *testing.T) {
	sink := &recordSink{}
	_, err := buildpipeline.Build(context.Background(), &buildpipeline.Request{
		InputPath: filepath.Join(t.TempDir(), "absent.bc"),
		Progress:  sink,
	})
	if err == nil {
		t.Fatalf("expected decode error")
	}
	evt, ok := sink.last(buildpipeline.StageDecode)
	if !ok || evt.Status != buildpipeline.StatusError {
		t.Fatalf("decode did not report an error event: %+v", evt)
	}
}

func TestBuild_RejectsInvalidModule(t *testing.T) {
	dir := t.TempDir()

	// A decodable module with an unterminated block must fail the
	// decode stage, before any flavoring happens.
	broken := &ir.Func{Name: "k"}
	broken.AddBlock()
	m := &ir.Module{Name: "broken", Funcs: []*ir.Func{broken}}
	input := filepath.Join(dir, "broken.bc")
	if err := ir.WriteModuleFile(input, m); err != nil {
		t.Fatalf("write input module: %v", err)
	}

	sink := &recordSink{}
	_, err := buildpipeline.Build(context.Background(), &buildpipeline.Request{
		InputPath:   input,
		KernelNames: []string{"k"},
		InstallRoot: writeInstallRoot(t),
		Runner:      &fakeRunner{},
		Progress:    sink,
	})
	if err == nil {
		t.Fatalf("invalid module accepted")
	}
	if !strings.Contains(err.Error(), "invalid module") {
		t.Fatalf("error does not name validation: %v", err)
	}
	evt, ok := sink.last(buildpipeline.StageDecode)
	if !ok || evt.Status != buildpipeline.StatusError {
		t.Fatalf("decode did not report an error event: %+v", evt)
	}
	if _, ok := sink.last(buildpipeline.StageFlavor); ok {
		t.Fatalf("flavor stage ran on an invalid module")
	}
}

func TestBuild_FlavorFailureCarriesTranslatorLog(t *testing.T) {
	dir := t.TempDir()
	input := writeInputModule(t, dir)

	// InstallRoot without the builtin library makes flavoring fail.
	res, err := buildpipeline.Build(context.Background(), &buildpipeline.Request{
		InputPath:   input,
		KernelNames: []string{"square"},
		InstallRoot: t.TempDir(),
		Runner:      &fakeRunner{},
	})
	if err == nil {
		t.Fatalf("expected flavoring to fail")
	}
	if len(res.Errors) == 0 {
		t.Fatalf("translator log not captured in result")
	}
	if !strings.Contains(err.Error(), res.Errors[len(res.Errors)-1]) {
		t.Fatalf("stage error does not carry the last log entry: %v", err)
	}
	// Nothing was written.
	if _, statErr := os.Stat(filepath.Join(dir, "square.s")); !os.IsNotExist(statErr) {
		t.Fatalf("output written despite failure")
	}
}

func TestBuild_ToolchainFailure(t *testing.T) {
	dir := t.TempDir()
	input := writeInputModule(t, dir)
	sink := &recordSink{}

	res, err := buildpipeline.Build(context.Background(), &buildpipeline.Request{
		InputPath:   input,
		KernelNames: []string{"square"},
		EmitIR:      true,
		InstallRoot: writeInstallRoot(t),
		Runner:      &fakeRunner{exitCode: 1, runErr: errors.New("clang: error")},
		Progress:    sink,
	})
	if err == nil {
		t.Fatalf("expected codegen error")
	}
	if len(res.Errors) == 0 || !strings.Contains(res.Errors[len(res.Errors)-1], "exit code 1") {
		t.Fatalf("translator log does not carry the exit code: %v", res.Errors)
	}
	evt, ok := sink.last(buildpipeline.StageCodegen)
	if !ok || evt.Status != buildpipeline.StatusError {
		t.Fatalf("codegen did not report an error event: %+v", evt)
	}
}

func TestBuildAll_ResultsInRequestOrder(t *testing.T) {
	dir := t.TempDir()
	root := writeInstallRoot(t)

	var reqs []*buildpipeline.Request
	var wantOutputs []string
	for _, name := range []string{"alpha", "beta", "gamma"} {
		sub := filepath.Join(dir, name)
		if err := os.MkdirAll(sub, 0o750); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		input := writeInputModule(t, sub)
		reqs = append(reqs, &buildpipeline.Request{
			InputPath:   input,
			KernelNames: []string{"square"},
			CPU:         "generic",
			EmitIR:      true,
			InstallRoot: root,
			Runner:      &fakeRunner{assembly: "; " + name + "\n"},
		})
		wantOutputs = append(wantOutputs, filepath.Join(sub, "square.s"))
	}

	results, err := buildpipeline.BuildAll(context.Background(), reqs)
	if err != nil {
		t.Fatalf("build all failed: %v", err)
	}
	if len(results) != len(reqs) {
		t.Fatalf("got %d results, want %d", len(results), len(reqs))
	}
	for i, res := range results {
		if res.OutputPath != wantOutputs[i] {
			t.Fatalf("result %d out of order: %q", i, res.OutputPath)
		}
		data, err := os.ReadFile(res.OutputPath)
		if err != nil {
			t.Fatalf("read output %d: %v", i, err)
		}
		if string(data) != res.Assembly {
			t.Fatalf("result %d assembly mismatch", i)
		}
	}
}
