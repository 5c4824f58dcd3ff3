package jobs

import (
	"context"
	"log/slog"

	"tracking/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// ProgressStepJob delivers the step tick to the progress engine.
// Runs every 30 seconds; three ticks complete one pipeline step.
type ProgressStepJob struct {
	engine *services.OrderProgressEngine
	cron   *cron.Cron
	logger *slog.Logger
}

// NewProgressStepJob creates the step tick job for the given engine.
func NewProgressStepJob(engine *services.OrderProgressEngine, logger *slog.Logger) *ProgressStepJob {
	return &ProgressStepJob{
		engine: engine,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "progress_step_job"),
	}
}

// Start begins delivering step ticks every 30 seconds.
func (j *ProgressStepJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		j.engine.StepTick(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Progress step job started (running every 30 seconds)")
	return nil
}

// Stop stops the step tick job.
func (j *ProgressStepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Progress step job stopped")
}
