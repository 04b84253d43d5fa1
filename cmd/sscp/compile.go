package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sscp/internal/buildpipeline"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] [inputs...]",
	Short: "Compile serialized kernel modules to native assembly",
	Long: "Compile serialized kernel modules to native assembly.\n" +
		"Inputs and entry points default to the sscp.toml manifest.",
	RunE: compileExecution,
}

func init() {
	compileCmd.Flags().StringSlice("kernel", nil, "entry-point function name (repeatable)")
	compileCmd.Flags().String("triple", "", "override the target triple")
	compileCmd.Flags().String("target-cpu", "", "override the target microarchitecture (\"generic\" omits the flag)")
	compileCmd.Flags().StringP("output", "o", "", "output path (single input only)")
	compileCmd.Flags().String("output-dir", "", "directory for generated assembly")
	compileCmd.Flags().Bool("emit-ir", false, "write the flavored-module dump next to each output")
	compileCmd.Flags().Bool("print-commands", false, "echo external toolchain invocations")
	compileCmd.Flags().String("driver", "", "toolchain driver executable (default clang)")
	compileCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

func compileExecution(cmd *cobra.Command, args []string) error {
	kernels, err := cmd.Flags().GetStringSlice("kernel")
	if err != nil {
		return err
	}
	triple, err := cmd.Flags().GetString("triple")
	if err != nil {
		return err
	}
	targetCPU, err := cmd.Flags().GetString("target-cpu")
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	outputDir, err := cmd.Flags().GetString("output-dir")
	if err != nil {
		return err
	}
	emitIR, err := cmd.Flags().GetBool("emit-ir")
	if err != nil {
		return err
	}
	printCommands, err := cmd.Flags().GetBool("print-commands")
	if err != nil {
		return err
	}
	driver, err := cmd.Flags().GetString("driver")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}

	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	manifest, manifestFound, err := loadProjectManifest(".")
	if err != nil {
		return err
	}

	inputs := args
	if len(inputs) == 0 {
		if !manifestFound || len(manifest.Config.Build.Inputs) == 0 {
			return fmt.Errorf("%s", noManifestMessage)
		}
		for _, in := range manifest.Config.Build.Inputs {
			inputs = append(inputs, filepath.Join(manifest.Root, in))
		}
	}
	if output != "" && len(inputs) != 1 {
		return fmt.Errorf("--output requires exactly one input")
	}

	if manifestFound {
		if len(kernels) == 0 {
			kernels = manifest.Config.Kernels.Names
		}
		if triple == "" {
			triple = manifest.Config.Target.Triple
		}
		if targetCPU == "" {
			targetCPU = manifest.Config.Target.CPU
		}
		if outputDir == "" {
			outputDir = manifest.Config.Build.OutputDir
		}
	}

	ctx, cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	reqs := make([]*buildpipeline.Request, 0, len(inputs))
	for _, in := range inputs {
		outPath := output
		if outPath == "" && outputDir != "" {
			base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
			outPath = filepath.Join(outputDir, base+".s")
		}
		reqs = append(reqs, &buildpipeline.Request{
			InputPath:     in,
			OutputPath:    outPath,
			KernelNames:   kernels,
			Triple:        triple,
			CPU:           targetCPU,
			EmitIR:        emitIR,
			Driver:        driver,
			PrintCommands: printCommands,
		})
	}

	results, err := runCompile(ctx, inputs, reqs, uiModeValue, quiet)
	if err != nil {
		reportTranslatorErrors(cmd, results)
		return err
	}

	if !quiet {
		for _, res := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", res.OutputPath)
		}
	}
	if showTimings {
		printTimings(cmd.OutOrStdout(), results)
	}
	return nil
}

func runCompile(ctx context.Context, inputs []string, reqs []*buildpipeline.Request, mode uiMode, quiet bool) ([]buildpipeline.Result, error) {
	if shouldUseTUI(mode) && !quiet {
		return runBuildAllWithUI(ctx, "sscp compile", inputs, reqs)
	}
	if !quiet {
		sink := plainSink{out: os.Stderr}
		for _, req := range reqs {
			req.Progress = sink
		}
	}
	return buildpipeline.BuildAll(ctx, reqs)
}

func reportTranslatorErrors(cmd *cobra.Command, results []buildpipeline.Result) {
	for _, res := range results {
		for _, msg := range res.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", msg)
		}
	}
}
