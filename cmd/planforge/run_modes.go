package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/planforge/planforge/internal/crew"
)

// runHeadlessMode executes the crew with plain line-based progress output.
// It owns the emitter: events are drained until Kickoff returns and the
// emitter is closed.
func runHeadlessMode(ctx context.Context, c *crew.Crew, emitter *crew.EventEmitter, inputs crew.Inputs) (*crew.Result, error) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		printEvents(emitter.Events())
	}()

	result, err := c.Kickoff(ctx, inputs)
	emitter.Close()
	<-done

	return result, err
}

// printEvents prints one line per crew event until the channel closes.
func printEvents(events <-chan crew.Event) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	for ev := range events {
		switch ev.Type {
		case crew.EventRunStarted:
			fmt.Println("Starting crew run...")
		case crew.EventTaskStarted:
			fmt.Printf("→ %s (%s)\n", ev.Task, ev.Agent)
		case crew.EventTaskCompleted:
			green.Printf("✓ %s\n", ev.Task)
		case crew.EventTaskFailed:
			red.Printf("✗ %s: %s\n", ev.Task, ev.Content)
		case crew.EventRunStopped:
			yellow.Println("Stop signal received, aborting run")
		case crew.EventRunCompleted:
			fmt.Printf("All tasks done (%d tokens)\n", ev.Usage.Total())
		}
	}
}
