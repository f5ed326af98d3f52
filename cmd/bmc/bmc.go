package bmc

import (
	"github.com/markusressel/ipmi2go/cmd/global"
	"github.com/markusressel/ipmi2go/internal/bmc"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "bmc",
	Short:            "BMC related commands",
	Long:             ``,
	TraverseChildren: true,
}

func getFanCommander() *bmc.FanCommander {
	config := global.LoadValidConfig()
	return bmc.NewConfiguredFanCommander(config.Bmc)
}
