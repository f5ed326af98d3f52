package bmc

import (
	"context"

	"github.com/markusressel/ipmi2go/cmd/global"
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/spf13/cobra"
)

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Hand fan control back to the BMC firmware",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		commander := getFanCommander()
		if err := commander.RestoreAuto(context.Background()); err != nil {
			global.ExitWithError("Error restoring automatic fan control: %v", err)
		}
		ui.Success("Automatic fan control restored")
	},
}

func init() {
	Command.AddCommand(autoCmd)
}
