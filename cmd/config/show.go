package config

import (
	"github.com/markusressel/ipmi2go/cmd/global"
	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Prints the configuration resulting from config file, environment variables and flags as YAML.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := global.LoadConfig(); err != nil {
			global.ExitWithError("%v", err)
		}

		out, err := yaml.Marshal(configuration.CurrentConfig)
		if err != nil {
			global.ExitWithError("Error encoding configuration: %v", err)
		}
		ui.Printf("%s", string(out))
	},
}

func init() {
	Command.AddCommand(showCmd)
}
