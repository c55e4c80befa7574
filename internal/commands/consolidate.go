// internal/commands/consolidate.go
package benchcsv

import (
	"github.com/mwiater/benchcsv/internal/consolidate"
	"github.com/spf13/cobra"
)

func newConsolidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consolidate",
		Short: "Merge all benchmark files into one CSV",
		Long: `Read every benchmark file in the directory and write a single CSV with
one row per benchmark entry: a running index, the library (the file name
without its suffix), the execution time and the benchmark name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := consolidate.Run(a.config.ConsolidateOptions())
			if len(summary.Results) > 0 {
				summary.Render(cmd.OutOrStdout())
			}
			return err
		},
	}

	cmd.Flags().String("output", consolidate.DefaultOutput, "consolidated CSV file name, relative to --dir")
	cmd.Flags().String("field", consolidate.DefaultField, "entry key reported as execution time")
	cmd.Flags().Bool("continueOnError", false, "skip malformed files instead of aborting")
	return cmd
}
