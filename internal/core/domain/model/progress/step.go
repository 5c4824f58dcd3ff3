package progress

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// Step identifies one stage of the fixed delivery pipeline by index.
// The index is the sole source of truth for done/current/upcoming
// classification; labels and clock labels are pure display data.
//
// Pipeline order:
//
//	Order Placed -> Driver Assigned -> Pickup Complete -> Washing ->
//	Drying -> Folding -> Out for Delivery -> Delivered
type Step int

// The delivery pipeline steps, in order.
const (
	StepOrderPlaced Step = iota
	StepDriverAssigned
	StepPickupComplete
	StepWashing
	StepDrying
	StepFolding
	StepOutForDelivery
	StepDelivered
)

// StepCount is the number of steps in the pipeline.
const StepCount = 8

// Phase classifies a step relative to the pipeline's current step.
type Phase int

// Phases of a step relative to the current one.
const (
	PhaseDone Phase = iota
	PhaseCurrent
	PhaseUpcoming
)

// stepDefinition carries the display data and ETA value for one step.
// The clock labels are nominal display times and the ETA minutes are
// hand-tuned reference values; neither has a stated derivation, so they are
// kept as data rather than computed.
type stepDefinition struct {
	label      string
	clockLabel string
	etaMinutes int
}

// getStepDefinitions returns the per-step display data and ETA table,
// indexed by step.
func getStepDefinitions() [StepCount]stepDefinition {
	return [StepCount]stepDefinition{
		{label: "Order Placed", clockLabel: "10:30 AM", etaMinutes: 150},
		{label: "Driver Assigned", clockLabel: "10:45 AM", etaMinutes: 120},
		{label: "Pickup Complete", clockLabel: "11:10 AM", etaMinutes: 90},
		{label: "Washing", clockLabel: "12:00 PM", etaMinutes: 60},
		{label: "Drying", clockLabel: "1:15 PM", etaMinutes: 45},
		{label: "Folding", clockLabel: "2:00 PM", etaMinutes: 30},
		{label: "Out for Delivery", clockLabel: "2:30 PM", etaMinutes: 15},
		{label: "Delivered", clockLabel: "3:00 PM", etaMinutes: 0},
	}
}

// Validate checks if the Step value is a valid pipeline index.
func (s Step) Validate() error {
	if s < 0 || s >= StepCount {
		return errs.NewValueIsInvalidErrorWithCause("step is invalid",
			fmt.Errorf("%d is not a valid step index", s))
	}
	return nil
}

// String returns the display label of the step, or "Unknown" for invalid
// values. Implements fmt.Stringer.
func (s Step) String() string {
	if s.Validate() != nil {
		return "Unknown"
	}
	return getStepDefinitions()[s].label
}

// ClockLabel returns the nominal clock-time label of the step. Cosmetic
// display data, never used for logic.
func (s Step) ClockLabel() string {
	if s.Validate() != nil {
		return ""
	}
	return getStepDefinitions()[s].clockLabel
}

// ETAMinutes returns the remaining-minutes value the pipeline publishes when
// it enters this step.
func (s Step) ETAMinutes() int {
	if s.Validate() != nil {
		return 0
	}
	return getStepDefinitions()[s].etaMinutes
}

// IsTerminal reports whether this is the final, non-advancing step.
func (s Step) IsTerminal() bool {
	return s == StepDelivered
}

// Next returns the following step.
//
// Returns an error if the step is invalid or already terminal; the pipeline
// never advances past Delivered.
func (s Step) Next() (Step, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, errs.NewValueIsInvalidErrorWithCause("step is invalid",
			fmt.Errorf("%s is the terminal step and cannot advance", s))
	}

	return s + 1, nil
}

// Phase classifies this step relative to current: steps before current are
// done, the current step is current, steps after are upcoming.
func (s Step) Phase(current Step) Phase {
	switch {
	case s < current:
		return PhaseDone
	case s == current:
		return PhaseCurrent
	default:
		return PhaseUpcoming
	}
}
