package sensor

import (
	"fmt"

	"github.com/markusressel/ipmi2go/cmd/global"
	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/sensors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Print the effective CPU package temperature",
	Long:             `Prints the maximum of all CPU package temperatures as an integer, e.g. for use in scripts.`,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		source, err := getTemperatureSource()
		if err != nil {
			return err
		}

		reading, err := source.Read(false)
		if err != nil {
			return err
		}
		fmt.Printf("%d", int(reading.Value))
		return nil
	},
}

func getTemperatureSource() (sensors.TemperatureSource, error) {
	if _, err := global.LoadConfig(); err != nil {
		return nil, err
	}
	return sensors.NewConfiguredTemperatureSource(configuration.CurrentConfig.Sensors)
}
