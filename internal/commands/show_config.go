// internal/commands/show_config.go
package benchcsv

import (
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

func newShowConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := pp.Fprintln(cmd.OutOrStdout(), a.config)
			return err
		},
	}
}
