package bmc

import (
	"context"

	"github.com/markusressel/ipmi2go/cmd/global"
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check whether the BMC is reachable and supports fan control",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		commander := getFanCommander()
		if err := commander.Probe(context.Background()); err != nil {
			global.ExitWithError("IPMI validation failed: %v", err)
		}
	},
}

func init() {
	Command.AddCommand(probeCmd)
}
