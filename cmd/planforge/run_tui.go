package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/planforge/planforge/internal/crew"
	"github.com/planforge/planforge/internal/llm"
	"github.com/planforge/planforge/internal/tui"
)

// runWithTUI executes the crew behind the interactive run view. Quitting
// the view detaches the display; the run itself keeps going and its
// result is still returned.
func runWithTUI(ctx context.Context, c *crew.Crew, emitter *crew.EventEmitter, inputs crew.Inputs, defs *crew.Definitions, pricing llm.Pricing) (*crew.Result, error) {
	// Suppress log output while the TUI is active (it corrupts the display)
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	program, _ := tui.NewRunProgram(inputs.Project, defs, pricing)

	type kickoffResult struct {
		result *crew.Result
		err    error
	}
	crewDone := make(chan kickoffResult, 1)

	go func() {
		result, err := c.Kickoff(ctx, inputs)
		emitter.Close()
		crewDone <- kickoffResult{result: result, err: err}
	}()

	forwardDone := make(chan struct{})
	go func() {
		defer close(forwardDone)
		for ev := range emitter.Events() {
			program.Send(tui.EventMsg{Event: ev})
		}
	}()

	go func() {
		<-forwardDone
		res := <-crewDone
		crewDone <- res
		program.Send(tui.DoneMsg{Err: res.err})
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("display error: %v (run continues)\n", err)
	}

	// The view may have been quit early; wait out the run either way.
	<-forwardDone
	res := <-crewDone
	return res.result, res.err
}
