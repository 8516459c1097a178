package cmd

import (
	"os"

	"github.com/semilin/kmdata/cmd/completion"
	"github.com/semilin/kmdata/internal/app/cli"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [CATEGORY]",
	Short: "List installed resources",
	Long: `List the installed resources of one category or of all categories.
CATEGORY is one of corpora, metrics or layouts. Singular forms are accepted too.`,
	Args:              cobra.MaximumNArgs(1),
	Run:               executeList,
	ValidArgsFunction: completion.CompleteCategories,
}

func init() {
	RootCmd.AddCommand(listCmd)
	AddOutputFormatFlag(listCmd)
}

func executeList(cmd *cobra.Command, args []string) {
	category := ""
	if len(args) > 0 {
		category = args[0]
	}
	format := cmd.Flag("format").Value.String()
	err := cli.List(cmd.Context(), category, format)
	if err != nil {
		os.Exit(1)
	}
}
