package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"workSchedule/internal/bench"
	"workSchedule/internal/opt"
	"workSchedule/internal/schedule"
)

func (c *CLI) solveCommand() *cobra.Command {
	var (
		file string
		algo string
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a single problem file and print the schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			p, err := schedule.ReadProblem(f)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			a, err := bench.NewAlgorithm(algo, c.exp)
			if err != nil {
				return err
			}
			solver, err := a.Factory(c.exp.Seed)
			if err != nil {
				return err
			}

			logger.Debug("solving", "file", file, "algo", algo, "jobs", p.N())
			res, err := solver.Solve(ctx, p)
			if err != nil {
				return err
			}
			if res.Fitness == schedule.Worst {
				return fmt.Errorf("%s: %w", file, schedule.ErrNoFeasibleSchedule)
			}
			logger.Debug("solved", "evaluations", res.Evaluations, "iterations", res.Iterations, "elapsed", res.Duration)
			return printResult(cmd.OutOrStdout(), algo, p, res)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "problem file (five lines, see generate)")
	cmd.Flags().StringVarP(&algo, "algo", "a", "exact", "algorithm: exact, ega or sfla")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func printResult(w io.Writer, algo string, p *schedule.Problem, res opt.Result) error {
	start, end := schedule.Simulate(p, res.Schedule)
	lines := [][2]string{
		{"algo", algo},
		{"schedule", joinInts(res.Schedule)},
		{"start", joinInts(start)},
		{"end", joinInts(end)},
		{"fitness", strconv.Itoa(res.Fitness)},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-9s %s\n", l[0]+":", l[1]); err != nil {
			return err
		}
	}
	return nil
}

func joinInts(vals []int) string {
	return strings.Join(lo.Map(vals, func(v int, _ int) string { return strconv.Itoa(v) }), " ")
}
