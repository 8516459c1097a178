package cmd

import (
	"os"

	"github.com/semilin/kmdata/cmd/completion"
	"github.com/semilin/kmdata/internal/app/cli"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show CATEGORY NAME",
	Short: "Show a resource as JSON",
	Long: `Load the named resource of CATEGORY and print it as indented JSON.
CATEGORY is one of corpora, metrics or layouts. Singular forms are accepted too.`,
	Args:              cobra.ExactArgs(2),
	Run:               executeShow,
	ValidArgsFunction: completion.CompleteResourceNames,
}

func init() {
	RootCmd.AddCommand(showCmd)
}

func executeShow(cmd *cobra.Command, args []string) {
	err := cli.Show(cmd.Context(), args[0], args[1])
	if err != nil {
		os.Exit(1)
	}
}
