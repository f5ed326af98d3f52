package configuration

// CurveConfig describes the power curve that maps a temperature to a fan duty percentage.
//
// Below MinTemp the fans run at MinFan, above MaxTemp at MaxFan. In between the
// normalized temperature is raised to the power of Exponent, so values > 1 keep the
// fans quiet for longer while values < 1 ramp up earlier.
type CurveConfig struct {
	MinFan   int     `json:"minFan" yaml:"minFan"`
	MaxFan   int     `json:"maxFan" yaml:"maxFan"`
	MinTemp  float64 `json:"minTemp" yaml:"minTemp"`
	MaxTemp  float64 `json:"maxTemp" yaml:"maxTemp"`
	Exponent float64 `json:"exponent" yaml:"exponent"`
}

const (
	MinDuty = 0
	MaxDuty = 100
)
