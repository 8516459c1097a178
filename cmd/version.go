package cmd

import (
	"github.com/semilin/kmdata/internal/app/cli"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show kmdata version information",
	Long:  `Show kmdata version information and the configuration file in use`,
	Args:  cobra.MaximumNArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		cli.Version()
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
