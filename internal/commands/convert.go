// internal/commands/convert.go
package benchcsv

import (
	"github.com/mwiater/benchcsv/internal/convert"
	"github.com/spf13/cobra"
)

func newConvertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Write one CSV per benchmark file",
		Long: `Convert each benchmark file F in the directory into F.csv. Columns are
every key seen in F's entries; entries missing a key get an empty cell.
A file that fails to parse is reported and the rest are still converted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := convert.Run(a.config.ConvertOptions())
			if len(summary.Results) > 0 {
				summary.Render(cmd.OutOrStdout())
			}
			return err
		},
	}

	cmd.Flags().Bool("sortColumns", false, "sort columns by name instead of first appearance")
	return cmd
}
