package cmd

import (
	"errors"
	"fmt"

	"github.com/markusressel/ipmi2go/cmd/global"
	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/sensors"
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect temperature sensors",
	Long: `Lists all temperature sensors found by the configured sensor backend,
marks those considered to be CPU package sensors and prints the
resulting effective temperature.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := global.LoadConfig(); err != nil {
			global.ExitWithError("%v", err)
		}
		config := configuration.CurrentConfig.Sensors

		backend, err := sensors.NewBackend(config)
		if err != nil {
			global.ExitWithError("%v", err)
		}
		temperatures, err := sensors.ListTemperatures(backend)
		if err != nil {
			global.ExitWithError("Error detecting sensors: %v", err)
		}

		matcher := sensors.NewMatcher(config.Chips, config.Labels)
		var rows [][]string
		for _, t := range temperatures {
			isPackage := ""
			if matcher.IsPackageTemperature(t) {
				isPackage = "yes"
			}
			rows = append(rows, []string{
				t.Chip, t.Label, fmt.Sprintf("%.1f", t.Value), isPackage,
			})
		}

		err = printTable(table.Table{
			Headers: []string{"Chip", "Label", "Value (°C)", "Package"},
			Rows:    rows,
		})
		if err != nil {
			global.ExitWithError("Error printing table: %v", err)
		}

		reading, err := sensors.NewTemperatureSource(backend, matcher).Read(false)
		switch {
		case errors.Is(err, sensors.ErrNoPackageSensorFound):
			ui.Warning("No package sensor found, check the configured chips %v and labels %v", config.Chips, config.Labels)
		case err != nil:
			ui.Error("Error reading temperature: %v", err)
		default:
			ui.Success("Effective temperature: %.1f°C", reading.Value)
		}
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
