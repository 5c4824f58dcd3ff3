// Package jobs provides scheduled background tasks for the tracking core.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to deliver the periodic ticks the progress engine runs on.
//
// # Available Jobs
//
// 1. ProgressStepJob - Runs every 30 seconds to advance the step fraction
// 2. ETACountdownJob - Runs every second to drain the displayed ETA
// 3. ActorMovementJob - Runs every 2 seconds to move the map actor
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager around the progress engine
//	jobManager := jobs.NewJobManager(progressEngine, logger)
//
//	// Start the engine and all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop everything when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The tick cadences are fixed: "*/30 * * * * *" for the step job,
// "* * * * * *" for the countdown job and "*/2 * * * * *" for the movement
// job. The engine, not the jobs, owns all pacing arithmetic (three step ticks
// per step, sixty countdown ticks per minute).
//
// # Error Handling
//
// - Tick handlers never return errors; the engine logs its own failures
// - The engine is stopped before the jobs on shutdown, so late ticks are no-ops
// - Failed job starts will stop any already running jobs and the engine
package jobs
