package buildpipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sscp/internal/backend/cpu"
	"sscp/internal/ir"
	"sscp/internal/passes"
	"sscp/internal/toolchain"
	"sscp/internal/trace"
)

// Request configures the translation of one serialized module.
type Request struct {
	// InputPath is the serialized module (portable binary encoding).
	InputPath string
	// OutputPath receives the generated assembly text. Empty derives
	// it from InputPath by swapping the extension for ".s".
	OutputPath string
	// KernelNames are the entry points of the module.
	KernelNames []string
	// Triple overrides the target triple; empty keeps the host default.
	Triple string
	// CPU overrides the target microarchitecture; empty keeps the host
	// default, "generic" omits the flag from the toolchain invocation.
	CPU string
	// EmitIR writes the flavored-module dump next to the output instead
	// of the fixed working-directory path.
	EmitIR bool
	// Driver overrides the toolchain driver. Empty means clang.
	Driver string
	// PrintCommands echoes external invocations to stdout.
	PrintCommands bool
	// InstallRoot overrides installation-root discovery.
	InstallRoot string
	// Runner overrides the external process executor; nil means the
	// blocking os/exec runner.
	Runner toolchain.Runner
	// Progress receives stage events; may be nil.
	Progress ProgressSink
}

// Result captures translation artefacts and timings.
type Result struct {
	OutputPath string
	Assembly   string
	Timings    Timings
	// Errors holds the translator's error log when a stage failed.
	Errors []string
}

// Build translates one serialized module into assembly on disk.
func Build(ctx context.Context, req *Request) (Result, error) {
	var result Result
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	reqCopy := *req
	req = &reqCopy

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "build "+req.InputPath)
	defer span.End("")

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = strings.TrimSuffix(req.InputPath, filepath.Ext(req.InputPath)) + ".s"
	}
	result.OutputPath = outputPath

	mod, err := runDecode(req, &result, tracer)
	if err != nil {
		return result, err
	}

	tr := cpu.New(req.KernelNames)
	if req.Runner != nil {
		tr.Runner = req.Runner
	} else {
		tr.Runner = toolchain.ExecRunner{PrintCommands: req.PrintCommands}
	}
	tr.Driver = req.Driver
	tr.InstallRoot = req.InstallRoot
	if req.Triple != "" && !tr.ApplyBuildOption("triple", req.Triple) {
		return result, fmt.Errorf("rejected build option triple=%q", req.Triple)
	}
	if req.CPU != "" && !tr.ApplyBuildOption("cpu", req.CPU) {
		return result, fmt.Errorf("rejected build option cpu=%q", req.CPU)
	}
	if req.EmitIR {
		tr.DumpPath = outputPath + ".ir"
	}

	if err := runFlavor(req, &result, tracer, tr, mod); err != nil {
		return result, err
	}

	asm, err := runCodegen(req, &result, tracer, tr, mod)
	if err != nil {
		return result, err
	}
	result.Assembly = asm

	writeStart := time.Now()
	emitStage(req.Progress, req.InputPath, StageWrite, StatusWorking, nil, 0)
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			err = fmt.Errorf("failed to create output dir: %w", err)
			emitStage(req.Progress, req.InputPath, StageWrite, StatusError, err, 0)
			return result, err
		}
	}
	if err := os.WriteFile(outputPath, []byte(asm), 0o600); err != nil {
		err = fmt.Errorf("failed to write build output %q: %w", outputPath, err)
		emitStage(req.Progress, req.InputPath, StageWrite, StatusError, err, 0)
		return result, err
	}
	result.Timings.Set(StageWrite, time.Since(writeStart))
	emitStage(req.Progress, req.InputPath, StageWrite, StatusDone, nil, result.Timings.Duration(StageWrite))

	return result, nil
}

func runDecode(req *Request, result *Result, tracer trace.Tracer) (*ir.Module, error) {
	span := trace.Begin(tracer, trace.ScopeTranslate, "decode")
	defer span.End("")

	start := time.Now()
	emitStage(req.Progress, req.InputPath, StageDecode, StatusWorking, nil, 0)
	mod, err := ir.ReadModuleFile(req.InputPath)
	if err != nil {
		emitStage(req.Progress, req.InputPath, StageDecode, StatusError, err, 0)
		return nil, err
	}
	if err := ir.Validate(mod); err != nil {
		err = fmt.Errorf("invalid module %q: %w", req.InputPath, err)
		emitStage(req.Progress, req.InputPath, StageDecode, StatusError, err, 0)
		return nil, err
	}
	result.Timings.Set(StageDecode, time.Since(start))
	emitStage(req.Progress, req.InputPath, StageDecode, StatusDone, nil, result.Timings.Duration(StageDecode))
	return mod, nil
}

func runFlavor(req *Request, result *Result, tracer trace.Tracer, tr *cpu.Translator, mod *ir.Module) error {
	span := trace.Begin(tracer, trace.ScopeTranslate, "flavor")
	defer span.End("")

	start := time.Now()
	emitStage(req.Progress, req.InputPath, StageFlavor, StatusWorking, nil, 0)
	ph := passes.NewHandler()
	ph.Tracer = tracer
	if !tr.ToBackendFlavor(mod, ph) {
		result.Errors = append([]string(nil), tr.Errors()...)
		err := stageError("flavoring failed", tr.Errors())
		emitStage(req.Progress, req.InputPath, StageFlavor, StatusError, err, 0)
		return err
	}
	result.Timings.Set(StageFlavor, time.Since(start))
	emitStage(req.Progress, req.InputPath, StageFlavor, StatusDone, nil, result.Timings.Duration(StageFlavor))
	return nil
}

func runCodegen(req *Request, result *Result, tracer trace.Tracer, tr *cpu.Translator, mod *ir.Module) (string, error) {
	span := trace.Begin(tracer, trace.ScopeTool, "codegen")
	defer span.End("")

	start := time.Now()
	emitStage(req.Progress, req.InputPath, StageCodegen, StatusWorking, nil, 0)
	var asm string
	if !tr.TranslateToBackendFormat(mod, &asm) {
		result.Errors = append([]string(nil), tr.Errors()...)
		err := stageError("code generation failed", tr.Errors())
		emitStage(req.Progress, req.InputPath, StageCodegen, StatusError, err, 0)
		return "", err
	}
	result.Timings.Set(StageCodegen, time.Since(start))
	emitStage(req.Progress, req.InputPath, StageCodegen, StatusDone, nil, result.Timings.Duration(StageCodegen))
	return asm, nil
}

func stageError(prefix string, log []string) error {
	if len(log) == 0 {
		return fmt.Errorf("%s", prefix)
	}
	return fmt.Errorf("%s: %s", prefix, log[len(log)-1])
}
