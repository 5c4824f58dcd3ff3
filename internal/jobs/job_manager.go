package jobs

import (
	"fmt"
	"log/slog"

	"tracking/internal/core/domain/services"
)

// JobManager coordinates the tick jobs feeding the progress engine.
// Provides a unified interface to start and stop all background jobs.
//
// Starting the jobs also starts the engine, and stopping them stops it, so a
// stray tick firing between the two can never mutate state: the engine drops
// ticks while stopped.
type JobManager struct {
	engine *services.OrderProgressEngine

	progressStepJob  *ProgressStepJob
	etaCountdownJob  *ETACountdownJob
	actorMovementJob *ActorMovementJob
}

// NewJobManager creates a job manager driving the given progress engine.
func NewJobManager(engine *services.OrderProgressEngine, logger *slog.Logger) *JobManager {
	return &JobManager{
		engine:           engine,
		progressStepJob:  NewProgressStepJob(engine, logger),
		etaCountdownJob:  NewETACountdownJob(engine, logger),
		actorMovementJob: NewActorMovementJob(engine, logger),
	}
}

// StartAll starts the engine and all tick jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	jm.engine.Start()

	if err := jm.progressStepJob.Start(); err != nil {
		jm.engine.Stop()
		return fmt.Errorf("failed to start progress step job: %w", err)
	}

	if err := jm.etaCountdownJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.progressStepJob.Stop()
		jm.engine.Stop()
		return fmt.Errorf("failed to start ETA countdown job: %w", err)
	}

	if err := jm.actorMovementJob.Start(); err != nil {
		jm.etaCountdownJob.Stop()
		jm.progressStepJob.Stop()
		jm.engine.Stop()
		return fmt.Errorf("failed to start actor movement job: %w", err)
	}

	return nil
}

// StopAll stops the engine first, so no further tick can change state, then
// stops the tick jobs.
func (jm *JobManager) StopAll() {
	jm.engine.Stop()
	jm.actorMovementJob.Stop()
	jm.etaCountdownJob.Stop()
	jm.progressStepJob.Stop()
}
