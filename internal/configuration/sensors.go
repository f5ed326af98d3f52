package configuration

const (
	SensorBackendLmSensors = "lmsensors"
	SensorBackendHwMon     = "hwmon"
)

type SensorConfig struct {
	// Backend used to enumerate temperature sensors, one of: lmsensors | hwmon
	Backend string `json:"backend" yaml:"backend"`
	// HwMonPath is the sysfs directory scanned by the hwmon backend
	HwMonPath string `json:"hwmonPath" yaml:"hwmonPath"`
	// Chips are matched (case-insensitive substring) against the chip name
	// to find CPU package sensors
	Chips []string `json:"chips" yaml:"chips"`
	// Labels are matched (case-insensitive substring) against the label
	// of each temperature input of a matching chip
	Labels []string `json:"labels" yaml:"labels"`
}
