package bmc

import (
	"context"
	"errors"
	"fmt"

	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/ipmi"
	"github.com/markusressel/ipmi2go/internal/ui"
)

var (
	ErrBmcUnreachable = errors.New("bmc unreachable")
	ErrCommandFailed  = errors.New("bmc command failed")
)

const (
	netFnApp         = 0x06
	cmdGetDeviceId   = 0x01
	netFnOem         = 0x30
	cmdOemFanControl = 0x30
	cmdOemFanStatus  = 0x45
	fanControlMode   = 0x01
	fanControlDuty   = 0x02
	fanModeManual    = 0x00
	fanModeAutomatic = 0x01
	fanStatusGetMode = 0x00
	allFanZones      = 0xff
	MinDuty          = configuration.MinDuty
	MaxDuty          = configuration.MaxDuty
)

type request struct {
	name  string
	netFn byte
	cmd   byte
	data  []byte
}

var (
	identifyRequest   = request{"identify", netFnApp, cmdGetDeviceId, nil}
	fanStatusRequest  = request{"read fan status", netFnOem, cmdOemFanStatus, []byte{fanStatusGetMode}}
	manualModeRequest = request{"enable manual fan control", netFnOem, cmdOemFanControl, []byte{fanControlMode, fanModeManual}}
	automaticRequest  = request{"restore automatic fan control", netFnOem, cmdOemFanControl, []byte{fanControlMode, fanModeAutomatic}}
)

func setDutyRequest(duty byte) request {
	return request{"set duty", netFnOem, cmdOemFanControl, []byte{fanControlDuty, allFanZones, duty}}
}

// Opener acquires an exclusively owned channel to the BMC
type Opener func() (ipmi.Channel, error)

// FanCommander sends fan control commands to the BMC. A channel is
// acquired for every call and released afterwards.
type FanCommander struct {
	open Opener
}

func NewFanCommander(open Opener) *FanCommander {
	return &FanCommander{open: open}
}

// NewConfiguredFanCommander creates a FanCommander using the transport described by config
func NewConfiguredFanCommander(config configuration.BmcConfig) *FanCommander {
	return NewFanCommander(func() (ipmi.Channel, error) {
		return ipmi.Open(config)
	})
}

// Probe checks that the BMC answers at all and, best effort, whether it
// understands the fan control commands.
func (c *FanCommander) Probe(ctx context.Context) error {
	return c.withChannel(func(channel ipmi.Channel) error {
		if _, err := send(ctx, channel, identifyRequest); err != nil {
			return fmt.Errorf("%w: %w", ErrBmcUnreachable, err)
		}
		ui.Info("IPMI device accessible")

		status, err := send(ctx, channel, fanStatusRequest)
		if err != nil {
			ui.Warning("Could not read fan status: %v", err)
			ui.Warning("Fan control may not work on this system")
			return nil
		}
		ui.Info("Fan control commands appear to be supported (status: %s)", ipmi.FormatResponse(status))
		return nil
	}, ErrBmcUnreachable)
}

// Apply switches the BMC to manual fan control and sets all fan zones to duty percent.
// There is no retry, if any step fails the fans may be left in manual mode.
func (c *FanCommander) Apply(ctx context.Context, duty int) error {
	if duty < MinDuty || duty > MaxDuty {
		return fmt.Errorf("%w: duty %d%% is out of range [%d, %d]", ErrCommandFailed, duty, MinDuty, MaxDuty)
	}

	return c.withChannel(func(channel ipmi.Channel) error {
		for _, r := range []request{manualModeRequest, setDutyRequest(byte(duty))} {
			if _, err := send(ctx, channel, r); err != nil {
				return fmt.Errorf("%w: %w", ErrCommandFailed, err)
			}
		}
		return nil
	}, ErrCommandFailed)
}

// RestoreAuto hands fan control back to the BMC firmware
func (c *FanCommander) RestoreAuto(ctx context.Context) error {
	return c.withChannel(func(channel ipmi.Channel) error {
		if _, err := send(ctx, channel, automaticRequest); err != nil {
			return fmt.Errorf("%w: %w", ErrCommandFailed, err)
		}
		return nil
	}, ErrCommandFailed)
}

func (c *FanCommander) withChannel(f func(channel ipmi.Channel) error, openErr error) error {
	channel, err := c.open()
	if err != nil {
		return fmt.Errorf("%w: %w", openErr, err)
	}
	defer func() {
		if err := channel.Close(); err != nil {
			ui.Debug("Error closing IPMI channel: %v", err)
		}
	}()
	return f(channel)
}

func send(ctx context.Context, channel ipmi.Channel, r request) ([]byte, error) {
	ui.Debug("IPMI %s: raw %s", r.name, ipmi.FormatRequest(r.netFn, r.cmd, r.data))
	response, err := channel.Raw(ctx, r.netFn, r.cmd, r.data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.name, err)
	}
	return response, nil
}
