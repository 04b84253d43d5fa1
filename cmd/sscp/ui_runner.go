package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sscp/internal/buildpipeline"
	"sscp/internal/ui"
)

type buildOutcome struct {
	results []buildpipeline.Result
	err     error
}

func runBuildAllWithUI(ctx context.Context, title string, inputs []string, reqs []*buildpipeline.Request) ([]buildpipeline.Result, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)

	go func() {
		for _, req := range reqs {
			req.Progress = buildpipeline.ChannelSink{Ch: events}
		}
		results, err := buildpipeline.BuildAll(ctx, reqs)
		outcomeCh <- buildOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, inputs, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

// plainSink prints one line per stage transition for non-TTY runs.
type plainSink struct {
	out io.Writer
}

func (s plainSink) OnEvent(evt buildpipeline.Event) {
	switch evt.Status {
	case buildpipeline.StatusDone:
		fmt.Fprintf(s.out, "%s: %s ok (%s)\n", evt.Stage, evt.File, evt.Elapsed.Round(roundUnit))
	case buildpipeline.StatusError:
		fmt.Fprintf(s.out, "%s: %s failed: %v\n", evt.Stage, evt.File, evt.Err)
	}
}
