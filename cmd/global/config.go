package global

import (
	"os"

	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/ui"
)

// LoadConfig reads the config file, if one exists, merges it with environment
// variables and flags and returns the path of the file used.
func LoadConfig() (string, error) {
	configPath, err := configuration.DetectConfigFile()
	if err != nil {
		return "", err
	}
	if len(configPath) > 0 {
		ui.Info("Using configuration file at: %s", configPath)
	} else {
		ui.Debug("No configuration file found, using defaults")
	}
	return configPath, configuration.LoadConfig()
}

// LoadValidConfig loads and validates the configuration, exiting the process on any error
func LoadValidConfig() configuration.Configuration {
	configPath, err := LoadConfig()
	if err != nil {
		ExitWithError("%v", err)
	}
	if err := configuration.Validate(configPath); err != nil {
		ExitWithError("%v", err)
	}
	return configuration.CurrentConfig
}

// ExitWithError prints the given message as an error and exits with code 1
func ExitWithError(format string, a ...interface{}) {
	ui.Error(format, a...)
	os.Exit(1)
}
