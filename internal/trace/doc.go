// Package trace provides a tracing subsystem for the sscp backend
// toolchain.
//
// Tracing tracks translation stages, pass boundaries and external tool
// invocations to help diagnose slow or hanging compilations.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	sscp compile --trace=- --trace-level=phase kernel.bc
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelPhase: driver and translation-stage boundaries
//   - LevelDetail: adds external-tool events
//   - LevelDebug: everything, including per-pass spans
//
// # Scopes
//
//   - ScopeDriver: top-level CLI operations
//   - ScopeTranslate: flavoring and code-generation stages
//   - ScopePass: individual pipeline passes
//   - ScopeTool: external toolchain invocations
//
// # Context Propagation
//
// Tracers travel through the pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeTranslate, "flavor")
//	defer span.End("")
package trace
