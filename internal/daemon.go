package internal

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/markusressel/ipmi2go/internal/bmc"
	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/controller"
	"github.com/markusressel/ipmi2go/internal/sensors"
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/oklog/run"
)

// FanCommander is the part of bmc.FanCommander used by the daemon
type FanCommander interface {
	controller.Commander
	Probe(ctx context.Context) error
	RestoreAuto(ctx context.Context) error
}

type Daemon struct {
	config    configuration.Configuration
	source    sensors.TemperatureSource
	commander FanCommander
	signals   []os.Signal
}

func NewDaemon(config configuration.Configuration, source sensors.TemperatureSource, commander FanCommander) *Daemon {
	return &Daemon{
		config:    config,
		source:    source,
		commander: commander,
		signals:   []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
}

// RunDaemon runs the control loop described by the given (already validated)
// configuration until it fails or the process receives a termination signal.
func RunDaemon(config configuration.Configuration) error {
	source, err := sensors.NewConfiguredTemperatureSource(config.Sensors)
	if err != nil {
		return err
	}
	commander := bmc.NewConfiguredFanCommander(config.Bmc)
	return NewDaemon(config, source, commander).Run(context.Background())
}

// Run probes the BMC (unless in dry run mode) and runs the control loop.
// If the loop is stopped from the outside, by a signal or by cancelling ctx,
// fan control is optionally handed back to the BMC.
func (d *Daemon) Run(ctx context.Context) error {
	policy := d.config.Loop
	if policy.DryRun {
		ui.Info("[DRY RUN] Fan speed will not be changed")
	} else {
		if err := d.commander.Probe(ctx); err != nil {
			ui.Error("IPMI validation failed: %v", err)
			ui.Error("Make sure %s exists and you have proper permissions", d.bmcTarget())
			return err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := controller.New(d.source, d.commander, d.config.Curve, policy)
	stopRequested := false

	var g run.Group
	{
		// === control loop
		g.Add(func() error {
			err := loop.Run(ctx)
			// a stop that interrupts a failing tick is still a failure
			if err == nil && ctx.Err() != nil {
				stopRequested = true
			}
			return err
		}, func(err error) {
			cancel()
		})
	}
	{
		// === signals
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, d.signals...)

		g.Add(func() error {
			select {
			case s := <-sig:
				ui.Info("Received %s signal, exiting...", s)
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	err := g.Run()
	if stopRequested && !policy.DryRun && d.config.Bmc.RestoreAutoOnExit {
		d.restoreAuto()
	}
	if err != nil {
		ui.Error("%v", err)
		return err
	}
	ui.Info("Done.")
	return nil
}

func (d *Daemon) restoreAuto() {
	ctx, cancel := context.WithTimeout(context.Background(), d.config.Bmc.Timeout*2)
	defer cancel()

	ui.Info("Restoring automatic fan control...")
	if err := d.commander.RestoreAuto(ctx); err != nil {
		ui.Warning("Unable to restore automatic fan control: %v", err)
		return
	}
	ui.Success("Automatic fan control restored")
}

func (d *Daemon) bmcTarget() string {
	if d.config.Bmc.Transport == configuration.BmcTransportIpmitool {
		return d.config.Bmc.Ipmitool.Exec
	}
	return d.config.Bmc.Device
}
