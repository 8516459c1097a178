package completion

import (
	"strings"

	"github.com/semilin/kmdata/internal/app/cli"
	"github.com/semilin/kmdata/internal/model"
	"github.com/spf13/cobra"
)

func NoCompletionNoFile(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// CompleteCategories completes the first argument with category directory names
func CompleteCategories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterPrefix(model.CategoryDirNames(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// CompleteResourceNames completes a category as first argument and the names installed in it as second
func CompleteResourceNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return CompleteCategories(cmd, args, toComplete)
	case 1:
		c, err := model.ParseCategory(args[0])
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		names, err := cli.ListNames(cmd.Context(), c)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

func filterPrefix(candidates []string, prefix string) []string {
	var res []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			res = append(res, c)
		}
	}
	return res
}
