package cmd

import (
	"fmt"
	"os"

	"github.com/markusressel/ipmi2go/cmd/bmc"
	"github.com/markusressel/ipmi2go/cmd/config"
	"github.com/markusressel/ipmi2go/cmd/global"
	"github.com/markusressel/ipmi2go/cmd/sensor"
	"github.com/markusressel/ipmi2go/internal"
	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ipmi2go",
	Short: "A daemon to control server fans through the BMC.",
	Long: `ipmi2go is a simple daemon that maps the hottest CPU package
temperature to a fan duty cycle and sends it to the baseboard
management controller using IPMI raw commands.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupUi()
	},
	// this is the default command to run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		config := global.LoadValidConfig()
		if !config.Loop.SingleShot {
			printHeader()
		}

		if err := internal.RunDaemon(config); err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	cobra.OnInitialize(func() {
		if err := configuration.InitConfig(global.CfgFile); err != nil {
			global.ExitWithError("%v", err)
		}
	})

	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is ipmi2go.yaml in ., $HOME or /etc/ipmi2go/)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "Print per package temperatures and every decision")

	defaults := configuration.DefaultConfiguration()
	rootCmd.PersistentFlags().Int("min-fan", defaults.Curve.MinFan, "Fan duty (%) at and below the minimum temperature")
	rootCmd.PersistentFlags().Int("max-fan", defaults.Curve.MaxFan, "Fan duty (%) at and above the maximum temperature")
	rootCmd.PersistentFlags().Float64("min-temp", defaults.Curve.MinTemp, "Temperature (°C) at which the fans start to speed up")
	rootCmd.PersistentFlags().Float64("max-temp", defaults.Curve.MaxTemp, "Temperature (°C) at which the fans reach the maximum duty")
	rootCmd.PersistentFlags().Float64("temp-pow", defaults.Curve.Exponent, "Exponent of the curve between both temperatures, 1 is linear")
	rootCmd.PersistentFlags().Float64P("interval", "i", defaults.Loop.Interval.Seconds(), "Seconds between two evaluations")

	rootCmd.Flags().BoolP("force", "f", false, "Send the fan duty on every evaluation, even if it did not change")
	rootCmd.Flags().BoolP("dry-run", "d", false, "Only print what would be done, never talk to the BMC")
	rootCmd.Flags().BoolP("single", "s", false, "Evaluate once and exit")

	bindFlag(rootCmd.PersistentFlags().Lookup("min-fan"), "curve.minFan")
	bindFlag(rootCmd.PersistentFlags().Lookup("max-fan"), "curve.maxFan")
	bindFlag(rootCmd.PersistentFlags().Lookup("min-temp"), "curve.minTemp")
	bindFlag(rootCmd.PersistentFlags().Lookup("max-temp"), "curve.maxTemp")
	bindFlag(rootCmd.PersistentFlags().Lookup("temp-pow"), "curve.exponent")
	bindFlag(rootCmd.PersistentFlags().Lookup("interval"), "loop.interval")
	bindFlag(rootCmd.PersistentFlags().Lookup("verbose"), "loop.verbose")
	bindFlag(rootCmd.Flags().Lookup("force"), "loop.force")
	bindFlag(rootCmd.Flags().Lookup("dry-run"), "loop.dryRun")
	bindFlag(rootCmd.Flags().Lookup("single"), "loop.singleShot")

	rootCmd.AddCommand(config.Command)
	rootCmd.AddCommand(bmc.Command)
	rootCmd.AddCommand(sensor.Command)
}

func bindFlag(flag *pflag.Flag, key string) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)
	ui.SetStyling(!global.NoColor, !global.NoStyle)
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("ipmi", pterm.NewStyle(pterm.FgLightBlue)),
		pterm.NewLettersFromStringWithStyle("2", pterm.NewStyle(pterm.FgWhite)),
		pterm.NewLettersFromStringWithStyle("go", pterm.NewStyle(pterm.FgLightBlue)),
	).Render()
	if err != nil {
		fmt.Println("ipmi2go")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
