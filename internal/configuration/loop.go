package configuration

import "time"

// LoopPolicy controls how the control loop behaves over its lifetime
type LoopPolicy struct {
	// Time to wait between two evaluations
	Interval time.Duration `json:"interval" yaml:"interval"`
	// Send the duty cycle to the BMC on every tick, even if it did not change
	Force bool `json:"force" yaml:"force"`
	// Only report what would be done, never talk to the BMC
	DryRun bool `json:"dryRun" yaml:"dryRun"`
	// Evaluate once and exit
	SingleShot bool `json:"singleShot" yaml:"singleShot"`
	// Print per-package temperatures and every decision
	Verbose bool `json:"verbose" yaml:"verbose"`
}
