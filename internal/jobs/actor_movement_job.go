package jobs

import (
	"context"
	"log/slog"

	"tracking/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// ActorMovementJob delivers the movement tick to the progress engine.
// Runs every 2 seconds, moving the map actor toward the destination until it
// converges.
type ActorMovementJob struct {
	engine *services.OrderProgressEngine
	cron   *cron.Cron
	logger *slog.Logger
}

// NewActorMovementJob creates the movement tick job for the given engine.
func NewActorMovementJob(engine *services.OrderProgressEngine, logger *slog.Logger) *ActorMovementJob {
	return &ActorMovementJob{
		engine: engine,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "actor_movement_job"),
	}
}

// Start begins delivering movement ticks every 2 seconds.
func (j *ActorMovementJob) Start() error {
	_, err := j.cron.AddFunc("*/2 * * * * *", func() {
		j.engine.ActorTick(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Actor movement job started (running every 2 seconds)")
	return nil
}

// Stop stops the movement tick job.
func (j *ActorMovementJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Actor movement job stopped")
}
