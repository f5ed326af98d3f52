package config

import (
	"github.com/markusressel/ipmi2go/cmd/global"
	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validates the current configuration",
	Long:  ``,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// note: config file path parameter comes from the root command (-c)
		configPath, err := global.LoadConfig()
		if err != nil {
			global.ExitWithError("%v", err)
		}

		if err := configuration.Validate(configPath); err != nil {
			global.ExitWithError("Validation failed: %v", err)
		}

		ui.Success("Config looks good! :)")
	},
}

func init() {
	Command.AddCommand(validateCmd)
}
