package passes_test

import (
	"errors"
	"strings"
	"testing"

	"sscp/internal/ir"
	"sscp/internal/passes"
	"sscp/internal/trace"
)

type failingPass struct{}

func (failingPass) Name() string { return "failing" }

func (failingPass) Run(*ir.Module, *passes.AnalysisManager) error {
	return errors.New("boom")
}

func TestPipelineRun_EmitsPassSpans(t *testing.T) {
	var buf strings.Builder
	tracer, err := trace.New(trace.Config{Level: trace.LevelDebug, Output: &buf})
	if err != nil {
		t.Fatalf("new tracer: %v", err)
	}

	m := &ir.Module{Name: "unit"}
	pipeline := passes.Pipeline{passes.SimplifyKernelPass{}}
	if err := pipeline.Run(tracer, m, passes.NewAnalysisManager()); err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"pass", "simplify-kernel", "begin", "end"} {
		if !strings.Contains(out, want) {
			t.Fatalf("trace output missing %q:\n%s", want, out)
		}
	}
}

func TestPipelineRun_SpansSuppressedBelowDebug(t *testing.T) {
	var buf strings.Builder
	tracer, err := trace.New(trace.Config{Level: trace.LevelDetail, Output: &buf})
	if err != nil {
		t.Fatalf("new tracer: %v", err)
	}

	m := &ir.Module{Name: "unit"}
	pipeline := passes.Pipeline{passes.SimplifyKernelPass{}}
	if err := pipeline.Run(tracer, m, passes.NewAnalysisManager()); err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("pass spans leaked below debug level:\n%s", buf.String())
	}
}

func TestPipelineRun_StopsAtFirstFailure(t *testing.T) {
	m := &ir.Module{Name: "unit"}
	pipeline := passes.Pipeline{failingPass{}, passes.SimplifyKernelPass{}}

	err := pipeline.Run(trace.Nop, m, passes.NewAnalysisManager())
	if err == nil {
		t.Fatalf("expected pipeline failure")
	}
	if !strings.Contains(err.Error(), "pass failing") {
		t.Fatalf("error does not name the failing pass: %v", err)
	}
}
