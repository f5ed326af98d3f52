package configuration

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	Curve   CurveConfig  `json:"curve" yaml:"curve"`
	Loop    LoopPolicy   `json:"loop" yaml:"loop"`
	Bmc     BmcConfig    `json:"bmc" yaml:"bmc"`
	Sensors SensorConfig `json:"sensors" yaml:"sensors"`
}

var CurrentConfig Configuration

const (
	configName = "ipmi2go"
	envPrefix  = "IPMI2GO"
)

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) error {
	viper.SetConfigName(configName)

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("couldn't detect home directory: %w", err)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/ipmi2go/")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues(viper.GetViper())
	return nil
}

// DefaultConfiguration returns the configuration used when
// neither a config file, environment variables nor flags are given.
func DefaultConfiguration() Configuration {
	return Configuration{
		Curve: CurveConfig{
			MinFan:   4,
			MaxFan:   100,
			MinTemp:  40,
			MaxTemp:  90,
			Exponent: 4,
		},
		Loop: LoopPolicy{
			Interval: 5 * time.Second,
		},
		Bmc: BmcConfig{
			Transport:         BmcTransportDevice,
			Device:            "/dev/ipmi0",
			Timeout:           5 * time.Second,
			RestoreAutoOnExit: true,
			Ipmitool: IpmitoolConfig{
				Exec: "/usr/bin/ipmitool",
				Args: []string{},
			},
		},
		Sensors: SensorConfig{
			Backend:   SensorBackendLmSensors,
			HwMonPath: "/sys/class/hwmon",
			Chips:     []string{"coretemp"},
			Labels:    []string{"Package"},
		},
	}
}

func setDefaultValues(v *viper.Viper) {
	defaults := DefaultConfiguration()

	v.SetDefault("curve.minFan", defaults.Curve.MinFan)
	v.SetDefault("curve.maxFan", defaults.Curve.MaxFan)
	v.SetDefault("curve.minTemp", defaults.Curve.MinTemp)
	v.SetDefault("curve.maxTemp", defaults.Curve.MaxTemp)
	v.SetDefault("curve.exponent", defaults.Curve.Exponent)

	v.SetDefault("loop.interval", defaults.Loop.Interval)
	v.SetDefault("loop.force", defaults.Loop.Force)
	v.SetDefault("loop.dryRun", defaults.Loop.DryRun)
	v.SetDefault("loop.singleShot", defaults.Loop.SingleShot)
	v.SetDefault("loop.verbose", defaults.Loop.Verbose)

	v.SetDefault("bmc.transport", defaults.Bmc.Transport)
	v.SetDefault("bmc.device", defaults.Bmc.Device)
	v.SetDefault("bmc.timeout", defaults.Bmc.Timeout)
	v.SetDefault("bmc.restoreAutoOnExit", defaults.Bmc.RestoreAutoOnExit)
	v.SetDefault("bmc.ipmitool.exec", defaults.Bmc.Ipmitool.Exec)
	v.SetDefault("bmc.ipmitool.args", defaults.Bmc.Ipmitool.Args)

	v.SetDefault("sensors.backend", defaults.Sensors.Backend)
	v.SetDefault("sensors.hwmonPath", defaults.Sensors.HwMonPath)
	v.SetDefault("sensors.chips", defaults.Sensors.Chips)
	v.SetDefault("sensors.labels", defaults.Sensors.Labels)
}

// DetectConfigFile reads the config file, if one can be found, and returns its path.
// A missing config file is not an error unless it was explicitly requested,
// in which case all values come from flags, environment and defaults.
func DetectConfigFile() (string, error) {
	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("error reading config file: %w", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed(), nil
}

// LoadConfig decodes the merged viper state into CurrentConfig
func LoadConfig() error {
	config, err := unmarshal(viper.GetViper())
	if err != nil {
		return err
	}
	CurrentConfig = config
	return nil
}

func unmarshal(v *viper.Viper) (Configuration, error) {
	var config Configuration
	err := v.Unmarshal(&config, viper.DecodeHook(decodeHook()))
	if err != nil {
		return config, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return config, nil
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		secondsToDurationHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// secondsToDurationHookFunc allows durations to be given as a plain
// number of (fractional) seconds, e.g. "interval: 2.5"
func secondsToDurationHookFunc() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))

	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != durationType || f == durationType {
			return data, nil
		}

		var seconds float64
		switch v := data.(type) {
		case float64:
			seconds = v
		case float32:
			seconds = float64(v)
		case int:
			seconds = float64(v)
		case int64:
			seconds = float64(v)
		case uint64:
			seconds = float64(v)
		case string:
			// values of bound float flags arrive as strings
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return data, nil
			}
			seconds = parsed
		default:
			return data, nil
		}

		if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
			return nil, fmt.Errorf("invalid duration: %v", data)
		}
		return time.Duration(seconds * float64(time.Second)), nil
	}
}
