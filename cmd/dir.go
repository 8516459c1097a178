package cmd

import (
	"os"

	"github.com/semilin/kmdata/cmd/completion"
	"github.com/semilin/kmdata/internal/app/cli"
	"github.com/spf13/cobra"
)

var dirCmd = &cobra.Command{
	Use:               "dir",
	Short:             "Print the location of the data directory",
	Long:              `Print the absolute path of the data directory. The directory and its category subdirectories are created if missing, nothing is downloaded.`,
	Args:              cobra.NoArgs,
	Run:               executeDir,
	ValidArgsFunction: completion.NoCompletionNoFile,
}

func init() {
	RootCmd.AddCommand(dirCmd)
}

func executeDir(cmd *cobra.Command, args []string) {
	err := cli.Dir(cmd.Context())
	if err != nil {
		os.Exit(1)
	}
}
