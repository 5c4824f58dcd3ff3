package progress

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

// Hand-tuned simulation constants. They reproduce the reference behavior and
// have no stated derivation; treat them as data, not formulas.
const (
	// StepFractionIncrement is the fraction of a step traversed per step
	// tick. Three ticks fully traverse one step.
	StepFractionIncrement = 1.0 / 3.0

	// ActorMoveFactor is the fraction of the remaining vector distance the
	// actor covers per movement tick.
	ActorMoveFactor = 0.1

	// ActorEpsilonDegrees is the per-axis convergence threshold below which
	// actor movement stops.
	ActorEpsilonDegrees = 0.001

	// fractionTolerance absorbs accumulated floating-point error so that
	// three ⅓ increments complete a step exactly.
	fractionTolerance = 1e-9
)

// ErrProgressIsNotConstructed is returned when an instance was not created
// through the NewProgress constructor.
var ErrProgressIsNotConstructed = errors.New("Progress must be created via NewProgress constructor")

// State is an immutable snapshot of the pipeline, safe to hand to any reader.
// Readers never see a torn combination: the snapshot is produced under the
// same serialization that guards all mutation.
type State struct {
	StepIndex        int
	StepLabel        string
	StepClockLabel   string
	StepFraction     float64
	RemainingMinutes int
	ActorPosition    kernel.GeoPoint
	Terminal         bool
}

// Progress is the aggregate tracking one active order through the delivery
// pipeline: current step, fractional progress within the step, published ETA,
// and the interpolated position of the moving actor (the driver marker).
//
// Invariants:
//   - the step index stays within the pipeline and never moves backward
//   - the step fraction stays in [0,1) and resets to 0 exactly when the step
//     index increments
//   - remaining minutes are non-increasing between transitions and are reset
//     (not blended) to the step's table value on each transition
//   - the aggregate is owned by a single writer; concurrent serialization is
//     the owner's responsibility, not the aggregate's
type Progress struct {
	step             Step
	stepFraction     float64
	remainingMinutes int
	actor            kernel.GeoPoint
	destination      kernel.GeoPoint
	guard            guard.ConstructorGuard
}

// NewProgress creates a pipeline tracker starting at the given step, with the
// actor at its initial position moving toward destination.
//
// Parameters:
//   - start: initial pipeline step (must be a valid step)
//   - actor: initial actor position (must be a valid coordinate)
//   - destination: fixed movement target (must be a valid coordinate)
//
// The published ETA starts at the starting step's table value.
func NewProgress(start Step, actor kernel.GeoPoint, destination kernel.GeoPoint) (*Progress, error) {
	if err := errors.Join(start.Validate(), actor.Validate(), destination.Validate()); err != nil {
		return nil, err
	}

	return &Progress{
		step:             start,
		stepFraction:     0,
		remainingMinutes: start.ETAMinutes(),
		actor:            actor,
		destination:      destination,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Progress was properly constructed.
func (p *Progress) Validate() error {
	if p == nil {
		return ErrProgressIsNotConstructed
	}
	return p.guard.Validate(ErrProgressIsNotConstructed)
}

// Step returns the current pipeline step.
func (p *Progress) Step() Step {
	return p.step
}

// StepFraction returns the fractional progress within the current step,
// always in [0,1).
func (p *Progress) StepFraction() float64 {
	return p.stepFraction
}

// RemainingMinutes returns the currently published ETA in minutes.
func (p *Progress) RemainingMinutes() int {
	return p.remainingMinutes
}

// ActorPosition returns the actor's current interpolated position.
func (p *Progress) ActorPosition() kernel.GeoPoint {
	return p.actor
}

// Destination returns the fixed movement target.
func (p *Progress) Destination() kernel.GeoPoint {
	return p.destination
}

// IsTerminal reports whether the pipeline has reached its final step.
func (p *Progress) IsTerminal() bool {
	return p.step.IsTerminal()
}

// Advance applies one step tick: the fraction grows by increment, and when it
// reaches 1.0 it resets to 0 and, unless the pipeline is terminal, the step
// index increments and the ETA is reset to the new step's table value.
//
// Returns:
//   - bool: true when this tick caused a step transition
//   - error: validation error if the aggregate or increment is invalid
//
// At the terminal step the fraction still cycles but the index and ETA no
// longer change, and no transition is reported.
func (p *Progress) Advance(increment float64) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	if increment <= 0 || increment > 1 {
		return false, errors.New("increment must be in (0, 1]")
	}

	p.stepFraction += increment
	if p.stepFraction < 1.0-fractionTolerance {
		return false, nil
	}

	p.stepFraction = 0
	if p.step.IsTerminal() {
		return false, nil
	}

	next, err := p.step.Next()
	if err != nil {
		return false, err
	}

	p.step = next
	p.remainingMinutes = next.ETAMinutes()
	return true, nil
}

// DecrementRemainingMinute lowers the published ETA by one minute, floored at
// zero. Purely cosmetic: it never drives step transitions, and the next
// transition overwrites whatever value it has counted down to.
func (p *Progress) DecrementRemainingMinute() error {
	if err := p.Validate(); err != nil {
		return err
	}

	if p.remainingMinutes > 0 {
		p.remainingMinutes--
	}
	return nil
}

// MoveActor applies one movement tick: the actor covers factor of the
// remaining per-axis distance toward the destination. Movement stops once the
// remaining distance is below epsilonDegrees on both axes.
//
// Returns:
//   - bool: true when the actor moved, false once converged
//   - error: validation error if the aggregate or parameters are invalid
func (p *Progress) MoveActor(factor float64, epsilonDegrees float64) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}

	converged, err := p.actor.WithinEpsilon(p.destination, epsilonDegrees)
	if err != nil {
		return false, err
	}
	if converged {
		return false, nil
	}

	moved, err := p.actor.Toward(p.destination, factor)
	if err != nil {
		return false, err
	}

	p.actor = moved
	return true, nil
}

// Snapshot returns an immutable copy of the published state.
func (p *Progress) Snapshot() State {
	return State{
		StepIndex:        int(p.step),
		StepLabel:        p.step.String(),
		StepClockLabel:   p.step.ClockLabel(),
		StepFraction:     p.stepFraction,
		RemainingMinutes: p.remainingMinutes,
		ActorPosition:    p.actor,
		Terminal:         p.step.IsTerminal(),
	}
}
