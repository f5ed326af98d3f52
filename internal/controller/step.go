package controller

import (
	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/curves"
	"github.com/markusressel/ipmi2go/internal/sensors"
)

// State is threaded from one tick of the control loop to the next
type State struct {
	// LastDuty is the duty of the last successful tick, nil before the first one.
	// It is also updated in dry run mode, so an unchanged duty is only reported once.
	LastDuty *int
}

// Action is the decision taken for a single reading
type Action struct {
	Temperature float64
	Duty        int
	// Change is true if the duty differs from the last one, or sending is forced
	Change bool
	// Apply is true if the duty has to be sent to the BMC, this is never the case in dry run mode
	Apply bool
	// Report is true if the decision should be printed
	Report bool
}

// Step computes the action for the given reading and the state to continue with
// once that action has been carried out successfully.
func Step(state State, reading sensors.Reading, curve configuration.CurveConfig, policy configuration.LoopPolicy) (State, Action) {
	duty := curves.Map(reading.Value, curve)
	change := policy.Force || state.LastDuty == nil || *state.LastDuty != duty

	action := Action{
		Temperature: reading.Value,
		Duty:        duty,
		Change:      change,
		Apply:       change && !policy.DryRun,
		Report:      policy.Verbose || (change && policy.DryRun),
	}
	return State{LastDuty: &duty}, action
}
