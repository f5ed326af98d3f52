package bmc

import (
	"context"
	"strconv"

	"github.com/markusressel/ipmi2go/cmd/global"
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <duty>",
	Short: "Switch to manual fan control and set all fans to the given duty ([0..100] %)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		duty, err := strconv.Atoi(args[0])
		if err != nil {
			global.ExitWithError("invalid duty '%s': %v", args[0], err)
		}

		commander := getFanCommander()
		if err := commander.Apply(context.Background(), duty); err != nil {
			global.ExitWithError("Error setting fan speed: %v", err)
		}
		ui.Success("Fan speed set to %d%%", duty)
	},
}

func init() {
	Command.AddCommand(setCmd)
}
