package curves

import (
	"math"

	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/util"
)

// Map calculates the fan duty percentage for the given temperature.
//
// The temperature is normalized to [0..1] within [MinTemp..MaxTemp], raised to the
// power of Exponent and scaled to [MinFan..MaxFan]. Values outside the temperature
// range are clamped, so the result is always within [MinFan..MaxFan].
// The given config must have passed configuration.ValidateCurve.
func Map(temperature float64, config configuration.CurveConfig) int {
	x := util.Coerce(util.Ratio(temperature, config.MinTemp, config.MaxTemp), 0.0, 1.0)
	if math.IsNaN(x) {
		// only possible for a NaN temperature, treat it as the worst case
		x = 1
	}
	duty := math.Pow(x, config.Exponent)*float64(config.MaxFan-config.MinFan) + float64(config.MinFan)
	return int(math.Round(duty))
}

// Point is a single temperature -> duty mapping of a curve
type Point struct {
	Temperature float64
	Duty        int
}

// Sample evaluates the curve in steps of the given size, starting at from and
// including to.
func Sample(config configuration.CurveConfig, from float64, to float64, step float64) []Point {
	if step <= 0 || from > to {
		return nil
	}

	var result []Point
	count := int(math.Floor((to-from)/step + 1e-9))
	for i := 0; i <= count; i++ {
		t := from + float64(i)*step
		result = append(result, Point{Temperature: t, Duty: Map(t, config)})
	}
	return result
}
