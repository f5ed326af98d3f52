package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/sensors"
	"github.com/markusressel/ipmi2go/internal/ui"
)

const dryRunPrefix = "[DRY RUN] "

// Commander sends a duty to the fans
type Commander interface {
	Apply(ctx context.Context, duty int) error
}

// ControlLoop periodically maps the temperature reported by a TemperatureSource
// to a fan duty and sends it to a Commander whenever it changes.
type ControlLoop struct {
	source    sensors.TemperatureSource
	commander Commander
	curve     configuration.CurveConfig
	policy    configuration.LoopPolicy

	state State
}

func New(source sensors.TemperatureSource, commander Commander, curve configuration.CurveConfig, policy configuration.LoopPolicy) *ControlLoop {
	return &ControlLoop{
		source:    source,
		commander: commander,
		curve:     curve,
		policy:    policy,
	}
}

// Run evaluates immediately and then once per interval, until ctx is cancelled
// (returning nil) or a tick fails. In single shot mode only one tick is evaluated.
func (l *ControlLoop) Run(ctx context.Context) error {
	if ctx.Err() != nil {
		return nil
	}
	if err := l.Tick(ctx); err != nil {
		return err
	}
	if l.policy.SingleShot {
		return nil
	}

	ticker := time.NewTicker(l.policy.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := l.Tick(ctx); err != nil {
				return err
			}
		}
	}
}

// Tick reads the temperature once and acts on it. The state is only
// updated if the tick succeeds.
func (l *ControlLoop) Tick(ctx context.Context) error {
	reading, err := l.source.Read(l.policy.Verbose)
	if err != nil {
		return fmt.Errorf("unable to read temperature: %w", err)
	}

	next, action := Step(l.state, reading, l.curve, l.policy)
	if l.policy.Verbose {
		printReading(reading)
	}
	if action.Report {
		printAction(action, l.policy.DryRun)
	}

	if action.Apply {
		if err := l.commander.Apply(ctx, action.Duty); err != nil {
			return fmt.Errorf("unable to set fan speed to %d%% based on %.1f°C: %w", action.Duty, action.Temperature, err)
		}
	}

	l.state = next
	return nil
}

func printReading(reading sensors.Reading) {
	for _, t := range reading.Detail {
		ui.Printfln("%s - %s: %.1f°C", t.Chip, t.Label, t.Value)
	}
	ui.Printfln("Effective temperature for calculation: %.1f°C", reading.Value)
}

// only a speed change carries the dry run marker
func printAction(action Action, dryRun bool) {
	if action.Change {
		ui.Printfln("%sSetting fan speed to %d%% based on %.1f°C", prefix(dryRun), action.Duty, action.Temperature)
	} else {
		ui.Printfln("Fan speed unchanged at %d%% (temp: %.1f°C)", action.Duty, action.Temperature)
	}
}

func prefix(dryRun bool) string {
	if dryRun {
		return dryRunPrefix
	}
	return ""
}
