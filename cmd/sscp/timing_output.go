package main

import (
	"fmt"
	"io"
	"time"

	"sscp/internal/buildpipeline"
	"sscp/internal/observ"
)

const roundUnit = time.Millisecond

var timingStages = []buildpipeline.Stage{
	buildpipeline.StageDecode,
	buildpipeline.StageFlavor,
	buildpipeline.StageCodegen,
	buildpipeline.StageWrite,
}

func printTimings(out io.Writer, results []buildpipeline.Result) {
	names := make([]string, len(timingStages))
	for i, stage := range timingStages {
		names[i] = string(stage)
	}
	for _, res := range results {
		durs := make([]time.Duration, len(timingStages))
		for i, stage := range timingStages {
			durs[i] = res.Timings.Duration(stage)
		}
		fmt.Fprintf(out, "%s\n", res.OutputPath)
		fmt.Fprint(out, observ.FromDurations(names, durs).Summary())
	}
}
