package curves

import (
	"math"
	"testing"

	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func createCurveConfig(minFan int, maxFan int, minTemp float64, maxTemp float64, exponent float64) configuration.CurveConfig {
	return configuration.CurveConfig{
		MinFan:   minFan,
		MaxFan:   maxFan,
		MinTemp:  minTemp,
		MaxTemp:  maxTemp,
		Exponent: exponent,
	}
}

var testCurves = []configuration.CurveConfig{
	createCurveConfig(10, 100, 40, 90, 2),
	createCurveConfig(4, 100, 40, 90, 4),
	createCurveConfig(0, 100, 0, 100, 1),
	createCurveConfig(20, 60, 30.5, 75.25, 0.5),
	createCurveConfig(50, 50, 40, 41, 3),
	createCurveConfig(0, 0, -10, 10, 1),
}

func TestMapMinimum(t *testing.T) {
	// GIVEN
	config := createCurveConfig(10, 100, 40, 90, 2)

	// WHEN
	atMin := Map(40, config)
	belowMin := Map(30, config)

	// THEN
	assert.Equal(t, 10, atMin)
	assert.Equal(t, 10, belowMin)
}

func TestMapMaximum(t *testing.T) {
	// GIVEN
	config := createCurveConfig(10, 100, 40, 90, 2)

	// WHEN
	atMax := Map(90, config)
	aboveMax := Map(200, config)

	// THEN
	assert.Equal(t, 100, atMax)
	assert.Equal(t, 100, aboveMax)
}

func TestMapLinear(t *testing.T) {
	// GIVEN
	config := createCurveConfig(0, 100, 0, 100, 1)

	// THEN
	assert.Equal(t, 0, Map(0, config))
	assert.Equal(t, 50, Map(50, config))
	assert.Equal(t, 100, Map(100, config))
}

func TestMapPowerCurve(t *testing.T) {
	// GIVEN
	config := createCurveConfig(10, 100, 40, 90, 2)

	// WHEN
	// x = (65 - 40) / (90 - 40) = 0.5
	// duty = 0.5^2 * (100 - 10) + 10 = 32.5 ≈ 33
	result := Map(65, config)

	// THEN
	assert.Equal(t, 33, result)
}

func TestMapHighPowerCurve(t *testing.T) {
	// GIVEN
	config := createCurveConfig(4, 100, 40, 90, 4)

	// THEN
	// x = 0.5, duty = 0.0625 * 96 + 4 = 10
	assert.Equal(t, 10, Map(65, config))
	// x = 0.8, duty = 0.4096 * 96 + 4 = 43.3 ≈ 43
	assert.Equal(t, 43, Map(80, config))
}

func TestMapBelowAndAboveRange(t *testing.T) {
	for _, config := range testCurves {
		for _, temp := range []float64{config.MinTemp, config.MinTemp - 0.1, config.MinTemp - 100, -273.15} {
			assert.Equal(t, config.MinFan, Map(temp, config), "%+v at %v", config, temp)
		}
		for _, temp := range []float64{config.MaxTemp, config.MaxTemp + 0.1, config.MaxTemp + 100, 1000} {
			assert.Equal(t, config.MaxFan, Map(temp, config), "%+v at %v", config, temp)
		}
	}
}

func TestMapIsMonotonic(t *testing.T) {
	for _, config := range testCurves {
		// GIVEN
		last := Map(-100, config)

		for temp := -100.0; temp <= 200; temp += 0.125 {
			// WHEN
			result := Map(temp, config)

			// THEN
			if !assert.GreaterOrEqual(t, result, last, "%+v at %v", config, temp) {
				return
			}
			assert.GreaterOrEqual(t, result, config.MinFan)
			assert.LessOrEqual(t, result, config.MaxFan)
			last = result
		}
	}
}

func TestMapLinearIsAffine(t *testing.T) {
	// GIVEN
	config := createCurveConfig(4, 100, 40, 90, 1)

	for temp := config.MinTemp; temp <= config.MaxTemp; temp += 0.1 {
		// WHEN
		result := Map(temp, config)

		// THEN
		expected := (temp-config.MinTemp)/(config.MaxTemp-config.MinTemp)*float64(config.MaxFan-config.MinFan) + float64(config.MinFan)
		assert.InDelta(t, expected, float64(result), 0.5+1e-9, "at %v", temp)
	}
}

func TestMapExponentShape(t *testing.T) {
	// GIVEN
	quiet := createCurveConfig(0, 100, 40, 90, 3)
	linear := createCurveConfig(0, 100, 40, 90, 1)
	eager := createCurveConfig(0, 100, 40, 90, 0.5)

	// WHEN
	temp := 60.0

	// THEN
	assert.Less(t, Map(temp, quiet), Map(temp, linear))
	assert.Greater(t, Map(temp, eager), Map(temp, linear))
}

func TestMapNaN(t *testing.T) {
	// GIVEN
	config := createCurveConfig(10, 100, 40, 90, 2)

	// WHEN
	result := Map(math.NaN(), config)

	// THEN
	assert.Equal(t, 100, result)
}

func TestSample(t *testing.T) {
	// GIVEN
	config := createCurveConfig(10, 100, 40, 90, 2)

	// WHEN
	result := Sample(config, 40, 90, 25)

	// THEN
	assert.Equal(t, []Point{
		{Temperature: 40, Duty: 10},
		{Temperature: 65, Duty: 33},
		{Temperature: 90, Duty: 100},
	}, result)
}

func TestSampleInvalidStep(t *testing.T) {
	// GIVEN
	config := createCurveConfig(10, 100, 40, 90, 2)

	// THEN
	assert.Nil(t, Sample(config, 40, 90, 0))
	assert.Nil(t, Sample(config, 90, 40, 1))
}
