package cmd

import (
	"os"

	"github.com/semilin/kmdata/internal"
	"github.com/semilin/kmdata/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "kmdata",
	Short: "Manage the local store of keyboard layout analysis data",
	Long: `kmdata locates the local data directory of keyboard layout analyzers and shows
the corpora, keyboard metric tables and layouts stored in it.
If the data directory does not exist yet, it is created and populated with
resources downloaded from their public repositories, unless --no-download is given.`,
	PersistentPreRun: preRun,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.String("data-dir", "", "use this data directory instead of the per-user default")
	flags.Bool("no-download", false, "do not download resources if the data directory does not exist")
	flags.BoolP("verbose", "v", false, "report files which are skipped while downloading or cataloging")
	flags.Bool("log", false, "enable logging to stderr")
	flags.String("loglevel", "", "set the log level (DEBUG, INFO, WARN, ERROR). Implies --log")
	bindFlags()
}

// bindFlags makes the persistent flags override the corresponding viper settings
func bindFlags() {
	flags := RootCmd.PersistentFlags()
	_ = viper.BindPFlag(config.KeyDataDir, flags.Lookup("data-dir"))
	_ = viper.BindPFlag(config.KeyVerbose, flags.Lookup("verbose"))
	_ = viper.BindPFlag(config.KeyLog, flags.Lookup("log"))
	_ = viper.BindPFlag(config.KeyLogLevel, flags.Lookup("loglevel"))
}

func preRun(cmd *cobra.Command, args []string) {
	if f := cmd.Flags().Lookup("no-download"); f != nil && f.Changed {
		viper.Set(config.KeyDownload, f.Value.String() != "true")
	}
	if f := cmd.Flags().Lookup("loglevel"); f != nil && f.Changed {
		viper.Set(config.KeyLog, true)
	}
	internal.InitLogging()
}
