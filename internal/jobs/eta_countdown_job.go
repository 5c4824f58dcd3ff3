package jobs

import (
	"context"
	"log/slog"

	"tracking/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// ETACountdownJob delivers the countdown tick to the progress engine.
// Runs every second; the engine folds sixty ticks into one displayed minute.
type ETACountdownJob struct {
	engine *services.OrderProgressEngine
	cron   *cron.Cron
	logger *slog.Logger
}

// NewETACountdownJob creates the countdown tick job for the given engine.
func NewETACountdownJob(engine *services.OrderProgressEngine, logger *slog.Logger) *ETACountdownJob {
	return &ETACountdownJob{
		engine: engine,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "eta_countdown_job"),
	}
}

// Start begins delivering countdown ticks every second.
func (j *ETACountdownJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		j.engine.CountdownTick(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "ETA countdown job started (running every second)")
	return nil
}

// Stop stops the countdown tick job.
func (j *ETACountdownJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "ETA countdown job stopped")
}
