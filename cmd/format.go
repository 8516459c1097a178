package cmd

import (
	"github.com/semilin/kmdata/internal/app/cli"
	"github.com/spf13/cobra"
)

func AddOutputFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", cli.OutputFormatPlain, "output format ("+cli.OutputFormatPlain+" or "+cli.OutputFormatJSON+")")
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{cli.OutputFormatPlain, cli.OutputFormatJSON}, cobra.ShellCompDirectiveNoFileComp
	})
}
