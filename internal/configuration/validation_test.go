package configuration

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func createValidConfig() Configuration {
	return DefaultConfiguration()
}

func TestValidateDefaultConfig(t *testing.T) {
	// GIVEN
	config := createValidConfig()

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateMinTempNotLessThanMaxTemp(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Curve.MinTemp = 90
	config.Curve.MaxTemp = 90

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.ErrorIs(t, err, ErrConfigInvalid)
	assert.EqualError(t, err, "invalid configuration: min_temp (90) must be less than max_temp (90)")
}

func TestValidateMinFanGreaterThanMaxFan(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Curve.MinFan = 60
	config.Curve.MaxFan = 50

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "invalid configuration: min_fan (60) must not be greater than max_fan (50)")
}

func TestValidateFanOutOfRange(t *testing.T) {
	for _, curve := range []CurveConfig{
		{MinFan: -1, MaxFan: 100, MinTemp: 40, MaxTemp: 90, Exponent: 1},
		{MinFan: 0, MaxFan: 101, MinTemp: 40, MaxTemp: 90, Exponent: 1},
		{MinFan: 255, MaxFan: 255, MinTemp: 40, MaxTemp: 90, Exponent: 1},
	} {
		// WHEN
		err := ValidateCurve(curve)

		// THEN
		assert.ErrorIs(t, err, ErrConfigInvalid, "%+v", curve)
	}
}

func TestValidateExponent(t *testing.T) {
	for _, exponent := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		// GIVEN
		curve := createValidConfig().Curve
		curve.Exponent = exponent

		// WHEN
		err := ValidateCurve(curve)

		// THEN
		assert.ErrorIs(t, err, ErrConfigInvalid, "exponent %v", exponent)
	}
}

func TestValidateNonFiniteTemperature(t *testing.T) {
	// GIVEN
	curve := createValidConfig().Curve
	curve.MaxTemp = math.Inf(1)

	// WHEN
	err := ValidateCurve(curve)

	// THEN
	assert.ErrorIs(t, err, ErrConfigInvalid)
}

func TestValidateInterval(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Loop.Interval = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "invalid configuration: interval (0s) must be greater than 0")
}

func TestValidateUnsupportedTransport(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Bmc.Transport = "serial"

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "invalid configuration: unsupported bmc transport 'serial', use one of: device | ipmitool")
}

func TestValidateMissingDevice(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Bmc.Device = ""

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "invalid configuration: bmc device path is missing")
}

func TestValidateBmcTimeout(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Bmc.Timeout = -1 * time.Second

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.ErrorIs(t, err, ErrConfigInvalid)
}

func TestValidateIpmitoolArgsContainRaw(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Bmc.Transport = BmcTransportIpmitool
	config.Bmc.Ipmitool.Args = []string{"-I", "open", "raw"}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "invalid configuration: ipmitool args must not contain the 'raw' subcommand, it is added automatically")
}

func TestValidateIpmitoolMissingExec(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Bmc.Transport = BmcTransportIpmitool
	config.Bmc.Ipmitool.Exec = ""

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "invalid configuration: ipmitool executable is missing")
}

func TestValidateUnsupportedSensorBackend(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensors.Backend = "nvidia"

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "invalid configuration: unsupported sensor backend 'nvidia', use one of: lmsensors | hwmon")
}

func TestValidateEmptySensorLabels(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensors.Labels = []string{"Package", ""}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "invalid configuration: sensor labels must be a list of non-empty names")
}
