package configuration

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/markusressel/ipmi2go/internal/util"
	"golang.org/x/exp/slices"
)

// ErrConfigInvalid is returned for every configuration that must not be handed to the control loop
var ErrConfigInvalid = errors.New("invalid configuration")

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	if err := ValidateCurve(config.Curve); err != nil {
		return err
	}
	if err := validateLoop(config.Loop); err != nil {
		return err
	}
	if err := validateBmc(config.Bmc); err != nil {
		return err
	}
	if err := validateSensors(config.Sensors); err != nil {
		return err
	}

	// the config file decides which executable we run as root
	if config.Bmc.Transport == BmcTransportIpmitool && len(path) > 0 {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return invalid("config file '%s' has invalid permissions: %s", path, err)
		}
	}

	return nil
}

func invalid(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfigInvalid, fmt.Sprintf(format, a...))
}

// ValidateCurve checks all invariants the curve mapping relies upon
func ValidateCurve(curve CurveConfig) error {
	if curve.MinFan < MinDuty || curve.MinFan > MaxDuty {
		return invalid("min_fan (%d) must be within [%d..%d]", curve.MinFan, MinDuty, MaxDuty)
	}
	if curve.MaxFan < MinDuty || curve.MaxFan > MaxDuty {
		return invalid("max_fan (%d) must be within [%d..%d]", curve.MaxFan, MinDuty, MaxDuty)
	}
	if curve.MinFan > curve.MaxFan {
		return invalid("min_fan (%d) must not be greater than max_fan (%d)", curve.MinFan, curve.MaxFan)
	}
	if !isFinite(curve.MinTemp) || !isFinite(curve.MaxTemp) {
		return invalid("min_temp (%v) and max_temp (%v) must be finite numbers", curve.MinTemp, curve.MaxTemp)
	}
	if curve.MinTemp >= curve.MaxTemp {
		return invalid("min_temp (%v) must be less than max_temp (%v)", curve.MinTemp, curve.MaxTemp)
	}
	if !isFinite(curve.Exponent) || curve.Exponent <= 0 {
		return invalid("exponent (%v) must be a number greater than 0", curve.Exponent)
	}
	return nil
}

func validateLoop(loop LoopPolicy) error {
	if loop.Interval <= 0 {
		return invalid("interval (%s) must be greater than 0", loop.Interval)
	}
	return nil
}

func validateBmc(bmc BmcConfig) error {
	supportedTransports := []string{BmcTransportDevice, BmcTransportIpmitool}
	if !slices.Contains(supportedTransports, bmc.Transport) {
		return invalid("unsupported bmc transport '%s', use one of: %s", bmc.Transport, strings.Join(supportedTransports, " | "))
	}

	if bmc.Timeout <= 0 {
		return invalid("bmc timeout (%s) must be greater than 0", bmc.Timeout)
	}

	switch bmc.Transport {
	case BmcTransportDevice:
		if len(bmc.Device) <= 0 {
			return invalid("bmc device path is missing")
		}
	case BmcTransportIpmitool:
		if len(bmc.Ipmitool.Exec) <= 0 {
			return invalid("ipmitool executable is missing")
		}
		if slices.Contains(bmc.Ipmitool.Args, "raw") {
			return invalid("ipmitool args must not contain the 'raw' subcommand, it is added automatically")
		}
	}

	return nil
}

func validateSensors(sensors SensorConfig) error {
	supportedBackends := []string{SensorBackendLmSensors, SensorBackendHwMon}
	if !slices.Contains(supportedBackends, sensors.Backend) {
		return invalid("unsupported sensor backend '%s', use one of: %s", sensors.Backend, strings.Join(supportedBackends, " | "))
	}

	if sensors.Backend == SensorBackendHwMon && len(sensors.HwMonPath) <= 0 {
		return invalid("hwmon path is missing")
	}

	if len(sensors.Chips) <= 0 || slices.Contains(sensors.Chips, "") {
		return invalid("sensor chips must be a list of non-empty names")
	}
	if len(sensors.Labels) <= 0 || slices.Contains(sensors.Labels, "") {
		return invalid("sensor labels must be a list of non-empty names")
	}

	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
