package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tracking/internal/core/domain/model/progress"
	"tracking/internal/pkg/errs"
)

// ErrProgressIsRequired is returned when an engine is created without a
// progress aggregate.
var ErrProgressIsRequired = errs.NewValueIsRequiredError("progress")

// AdvisoryTTL is how long a step-transition advisory stays meaningful for
// display after it is raised.
const AdvisoryTTL = 3 * time.Second

// countdownTicksPerMinute is how many countdown ticks make up one displayed
// minute.
const countdownTicksPerMinute = 60

// StepTransition is a one-shot advisory raised when the pipeline advances to
// a new step. It is display guidance, not state: consumers that miss one read
// the current step from the state snapshot instead.
type StepTransition struct {
	Step       progress.Step
	Label      string
	OccurredAt time.Time
	ExpiresAt  time.Time
}

// Active reports whether the advisory is still within its display window at
// the given instant.
func (t StepTransition) Active(now time.Time) bool {
	return now.Before(t.ExpiresAt)
}

// OrderProgressEngine drives an order's progress pipeline off three external
// tick sources: the step tick advancing the step fraction, the countdown tick
// draining the displayed ETA, and the actor tick moving the map actor toward
// the destination.
//
// All ticks and reads serialize on one mutex, so a step index, its fraction
// and its ETA always change together and every snapshot is consistent. While
// the engine is stopped every tick is a no-op; Stop is synchronous and
// idempotent.
//
// Safe for concurrent use.
type OrderProgressEngine struct {
	logger *slog.Logger
	clock  func() time.Time

	mu             sync.Mutex
	state          *progress.Progress
	running        bool
	countdownTicks int

	advisories chan StepTransition
}

// ProgressEngineOption configures an OrderProgressEngine.
type ProgressEngineOption func(*OrderProgressEngine)

// WithProgressClock replaces the engine's time source. Intended for tests.
func WithProgressClock(clock func() time.Time) ProgressEngineOption {
	return func(e *OrderProgressEngine) {
		e.clock = clock
	}
}

// NewOrderProgressEngine creates a stopped engine over the given aggregate.
func NewOrderProgressEngine(
	state *progress.Progress,
	logger *slog.Logger,
	opts ...ProgressEngineOption,
) (*OrderProgressEngine, error) {
	if state == nil {
		return nil, ErrProgressIsRequired
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}

	engine := &OrderProgressEngine{
		logger:     logger.With("component", "progress_engine"),
		clock:      time.Now,
		state:      state,
		advisories: make(chan StepTransition, 1),
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine, nil
}

// Start enables tick processing. Starting a running engine is a no-op.
func (e *OrderProgressEngine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return
	}
	e.running = true
}

// Stop disables tick processing. By the time Stop returns no tick will change
// state or raise an advisory anymore. Stopping a stopped engine is a no-op.
func (e *OrderProgressEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}
	e.running = false
}

// Running reports whether the engine is processing ticks.
func (e *OrderProgressEngine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// State returns a consistent snapshot of the pipeline.
func (e *OrderProgressEngine) State() progress.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Snapshot()
}

// Advisories exposes the step-transition advisory channel. Capacity is one
// and delivery is latest-wins: an unconsumed advisory is replaced, never
// queued behind, when a newer transition occurs.
func (e *OrderProgressEngine) Advisories() <-chan StepTransition {
	return e.advisories
}

// StepTick advances the current step's fraction by one increment and, when
// the fraction completes, moves the pipeline to the next step, resets the
// displayed ETA to that step's value and raises a transition advisory.
// Terminal pipelines and stopped engines ignore the tick.
func (e *OrderProgressEngine) StepTick(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}

	advanced, err := e.state.Advance(progress.StepFractionIncrement)
	if err != nil {
		e.logger.ErrorContext(ctx, "Step tick failed", "error", err)
		return
	}
	if !advanced {
		return
	}

	snapshot := e.state.Snapshot()
	e.logger.InfoContext(ctx, "Order advanced to next step",
		"step", snapshot.StepLabel, "etaMinutes", snapshot.RemainingMinutes)

	e.raiseAdvisory(progress.Step(snapshot.StepIndex), snapshot.StepLabel)

	if snapshot.Terminal {
		e.logger.InfoContext(ctx, "Order delivered")
	}
}

// CountdownTick counts one second toward the displayed ETA. Every sixtieth
// tick takes one minute off the remaining time, floored at zero; the step and
// its fraction are never touched from here.
func (e *OrderProgressEngine) CountdownTick(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}

	e.countdownTicks++
	if e.countdownTicks < countdownTicksPerMinute {
		return
	}
	e.countdownTicks = 0

	if err := e.state.DecrementRemainingMinute(); err != nil {
		e.logger.ErrorContext(ctx, "Countdown tick failed", "error", err)
	}
}

// ActorTick moves the map actor a tenth of the way toward the destination.
// Once the actor is within the snap threshold on both axes it stays put.
func (e *OrderProgressEngine) ActorTick(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}

	if _, err := e.state.MoveActor(progress.ActorMoveFactor, progress.ActorEpsilonDegrees); err != nil {
		e.logger.ErrorContext(ctx, "Actor tick failed", "error", err)
	}
}

// raiseAdvisory publishes a transition advisory, replacing any unconsumed
// one. Callers hold the engine mutex, so the drain-then-send pair cannot
// interleave with another producer.
func (e *OrderProgressEngine) raiseAdvisory(step progress.Step, label string) {
	now := e.clock()
	advisory := StepTransition{
		Step:       step,
		Label:      label,
		OccurredAt: now,
		ExpiresAt:  now.Add(AdvisoryTTL),
	}

	select {
	case <-e.advisories:
	default:
	}

	select {
	case e.advisories <- advisory:
	default:
	}
}
