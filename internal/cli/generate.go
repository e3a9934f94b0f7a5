package cli

import (
	"bufio"

	"github.com/spf13/cobra"

	"workSchedule/internal/bench"
)

func (c *CLI) generateCommand() *cobra.Command {
	var (
		count int
		jobs  int
		out   string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random problems and record their exact optimum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if !cmd.Flags().Changed("count") {
				count = c.exp.Bench.Count
			}
			if !cmd.Flags().Changed("jobs") {
				jobs = c.exp.Bench.Jobs
			}

			f, err := createOutput(cmd, out)
			if err != nil {
				return err
			}
			defer f.Close()
			bw := bufio.NewWriter(f)

			prog := newProgress(logger)
			rep, err := bench.Generate(ctx, bw, bench.GenerateOptions{
				Count:   count,
				Jobs:    jobs,
				Seed:    c.exp.Seed,
				Exact:   c.exp.Exact,
				Workers: c.exp.Bench.Workers,
				Logger:  logger,
			})
			if err != nil {
				return err
			}
			if err := bw.Flush(); err != nil {
				return err
			}
			prog.done("generated problems", "out", out, "written", rep.Written, "skipped", rep.Skipped)
			return f.Close()
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of problems (default from config)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "jobs per problem (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "problems.txt", "output file, - for stdout")
	return cmd
}
