package cli

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"workSchedule/internal/bench"
)

func (c *CLI) histogramCommand() *cobra.Command {
	var (
		in    string
		names []string
	)
	cmd := &cobra.Command{
		Use:   "histogram",
		Short: "Bucket deviations into 10% ranges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(in)
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := bench.ReadDeviations(f)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			if len(rows) == 0 {
				return fmt.Errorf("%s: no deviations", in)
			}

			cols := len(rows[0])
			if !cmd.Flags().Changed("names") {
				names = c.exp.Bench.Algorithms
			}
			if len(names) != cols {
				// подписи не совпадают с числом столбцов: нумеруем
				names = lo.Times(cols, func(i int) string { return fmt.Sprintf("col%d", i+1) })
			}

			loggerFromContext(cmd.Context()).Debug("read deviations", "in", in, "rows", len(rows), "columns", cols)
			return bench.WriteHistogram(cmd.OutOrStdout(), names, rows)
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "deviations.txt", "deviations file written by replay")
	cmd.Flags().StringSliceVar(&names, "names", nil, "column names (default: algorithms from config)")
	return cmd
}
