package sensor

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/markusressel/ipmi2go/cmd/global"
	"github.com/markusressel/ipmi2go/internal"
	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/spf13/cobra"
)

var windowSize int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Continuously print the effective temperature",
	Long: `Samples the effective CPU package temperature once per interval and prints it
together with the minimum, average and maximum over the last samples.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if windowSize <= 0 {
			global.ExitWithError("window (%d) must be greater than 0", windowSize)
		}
		source, err := getTemperatureSource()
		if err != nil {
			global.ExitWithError("%v", err)
		}
		interval := configuration.CurrentConfig.Loop.Interval
		if interval <= 0 {
			global.ExitWithError("interval (%s) must be greater than 0", interval)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		monitor := internal.NewTemperatureMonitor(source, interval, windowSize)
		err = monitor.Run(ctx, func(stats internal.TemperatureStats) {
			ui.Printfln("%.1f°C (min: %.1f°C, avg: %.1f°C, max: %.1f°C over %d samples)",
				stats.Current, stats.Min, stats.Avg, stats.Max, min(stats.Samples, windowSize))
		})
		if err != nil {
			global.ExitWithError("Error reading temperature: %v", err)
		}
	},
}

func init() {
	watchCmd.Flags().IntVarP(&windowSize, "window", "w", 10, "Number of samples to compute min, avg and max over")
	Command.AddCommand(watchCmd)
}
