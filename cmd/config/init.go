package config

import (
	"os"

	"github.com/markusressel/ipmi2go/cmd/global"
	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/markusressel/ipmi2go/internal/util"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "./ipmi2go.yaml"

var overwrite bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file containing the default configuration",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := defaultConfigPath
		if len(args) > 0 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil && !overwrite {
			global.ExitWithError("%s already exists, use --overwrite to replace it", path)
		}

		out, err := yaml.Marshal(configuration.DefaultConfiguration())
		if err != nil {
			global.ExitWithError("Error encoding configuration: %v", err)
		}
		if err := util.WriteFileAtomic(path, out); err != nil {
			global.ExitWithError("Error writing %s: %v", path, err)
		}
		ui.Success("Default configuration written to %s", path)
	},
}

func init() {
	initCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	Command.AddCommand(initCmd)
}
