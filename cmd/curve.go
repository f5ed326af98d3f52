package cmd

import (
	"fmt"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/ipmi2go/cmd/global"
	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/curves"
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

// temperature range plotted in addition to [minTemp..maxTemp]
const curveMargin = 10

var curveStep float64

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the configured fan curve to console",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := global.LoadConfig(); err != nil {
			global.ExitWithError("%v", err)
		}
		config := configuration.CurrentConfig.Curve
		if err := configuration.ValidateCurve(config); err != nil {
			global.ExitWithError("%v", err)
		}
		if curveStep <= 0 {
			global.ExitWithError("step (%v) must be greater than 0", curveStep)
		}

		if err := printCurve(config, curveStep); err != nil {
			global.ExitWithError("Error printing table: %v", err)
		}
	},
}

// printCurve prints a table of the curve with the given temperature step
// followed by a plot of it
func printCurve(config configuration.CurveConfig, step float64) error {
	from := config.MinTemp - curveMargin
	to := config.MaxTemp + curveMargin

	var rows [][]string
	for _, p := range curves.Sample(config, from, to, step) {
		rows = append(rows, []string{fmt.Sprintf("%.1f", p.Temperature), strconv.Itoa(p.Duty)})
	}
	err := printTable(table.Table{
		Headers: []string{"Temperature (°C)", "Duty (%)"},
		Rows:    rows,
	})
	if err != nil {
		return err
	}

	points := curves.Sample(config, from, to, 1)
	values := make([]float64, 0, len(points))
	for _, p := range points {
		values = append(values, float64(p.Duty))
	}
	caption := fmt.Sprintf("Duty (%%) / Temperature from %.0f°C to %.0f°C", from, to)
	graph := asciigraph.Plot(values,
		asciigraph.Height(15),
		asciigraph.Width(100),
		asciigraph.LowerBound(configuration.MinDuty),
		asciigraph.UpperBound(configuration.MaxDuty),
		asciigraph.Caption(caption),
	)
	ui.Printfln("%s", graph)
	return nil
}

func init() {
	curveCmd.Flags().Float64Var(&curveStep, "step", 5, "Temperature difference (°C) between two table rows")
	rootCmd.AddCommand(curveCmd)
}
