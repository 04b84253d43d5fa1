package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sscp/internal/trace"
)

// setupTracing reads the trace flags, initializes a tracer and attaches
// it to the command context. The returned cleanup closes the tracer.
func setupTracing(cmd *cobra.Command) (context.Context, func(), error) {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, nil, err
	}
	// --trace without an explicit level implies phase tracing
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		return trace.WithTracer(cmd.Context(), trace.Nop), func() {}, nil
	}

	tracer, err := trace.New(trace.Config{Level: level, OutputPath: traceOutput})
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = tracer.Flush()
		_ = tracer.Close()
	}
	return trace.WithTracer(cmd.Context(), tracer), cleanup, nil
}
