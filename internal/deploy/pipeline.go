package deploy

import (
	"fmt"
	"time"
)

// Stage defines one step of the deployment workflow.
type Stage interface {
	// Name returns the stage name attached to failures originating here.
	Name() string

	// Run executes the stage. Results land in ctx.State.
	Run(ctx *Context) error
}

// RunStages executes all deployment stages sequentially. Stage N+1 is never
// started before stage N completed successfully; the first failure
// short-circuits the rest and is returned with its originating stage and
// kind attached.
func RunStages(ctx *Context, stages []Stage) *Error {
	start := time.Now()
	ctx.Observer.Printf("Starting deployment with %d stages...", len(stages))

	for i, stage := range stages {
		stageStart := time.Now()

		ctx.Observer.Event(Event{
			Type:    EventStageStarted,
			Stage:   stage.Name(),
			Message: fmt.Sprintf("starting (%d/%d)", i+1, len(stages)),
		})

		if err := stage.Run(ctx); err != nil {
			ctx.Observer.Event(Event{
				Type:    EventStageFailed,
				Stage:   stage.Name(),
				Message: fmt.Sprintf("failed: %v", err),
			})
			if de, ok := AsError(err); ok {
				return de
			}
			return NewError(stage.Name(), KindRemoteService, err)
		}

		ctx.Observer.Event(Event{
			Type:    EventStageCompleted,
			Stage:   stage.Name(),
			Message: fmt.Sprintf("completed in %v", time.Since(stageStart).Round(time.Millisecond)),
		})
	}

	ctx.Observer.Printf("Deployment completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
