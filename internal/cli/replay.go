package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"workSchedule/internal/bench"
	"workSchedule/internal/metrics"
)

func (c *CLI) replayCommand() *cobra.Command {
	var (
		in          string
		out         string
		algos       []string
		metricsFile string
		summaryFile string
	)
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Run the heuristics on recorded problems and write deviations from the optimum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			exp := c.exp
			if cmd.Flags().Changed("algos") {
				exp.Bench.Algorithms = lo.Uniq(algos)
				if err := exp.Validate(); err != nil {
					return err
				}
			}
			heuristics, err := bench.Heuristics(exp)
			if err != nil {
				return err
			}

			src, err := os.Open(in)
			if err != nil {
				return err
			}
			defer src.Close()

			dst, err := createOutput(cmd, out)
			if err != nil {
				return err
			}
			defer dst.Close()
			bw := bufio.NewWriter(dst)

			prog := newProgress(logger)
			rep, err := bench.Replay(ctx, bufio.NewReader(src), bw, bench.ReplayOptions{
				Algorithms:    heuristics,
				Seed:          exp.Seed,
				Workers:       exp.Bench.Workers,
				PerRunTimeout: exp.Bench.PerRunTimeout,
				Logger:        logger,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			if err := bw.Flush(); err != nil {
				return err
			}
			prog.done("replayed problems", "in", in, "out", out, "instances", rep.Instances, "batch", rep.BatchID)

			for _, s := range rep.Summaries {
				logger.Info("summary", "algo", s.Algo, "runs", s.Runs, "failed", s.Failed,
					"deviation_mean", fmt.Sprintf("%.2f", s.DeviationMean),
					"deviation_std", fmt.Sprintf("%.2f", s.DeviationStd),
					"time_mean_ms", fmt.Sprintf("%.3f", s.TimeMeanMs))
			}

			if summaryFile != "" {
				if err := bench.WriteCSV(summaryFile, rep.Summaries); err != nil {
					return err
				}
				logger.Debug("wrote summary", "path", summaryFile)
			}
			if metricsFile != "" {
				if err := metrics.WriteTextfile(metricsFile); err != nil {
					return err
				}
				logger.Debug("wrote metrics", "path", metricsFile)
			}
			return dst.Close()
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "problems.txt", "problem file written by generate")
	cmd.Flags().StringVarP(&out, "out", "o", "deviations.txt", "deviations file, - for stdout")
	cmd.Flags().StringSliceVar(&algos, "algos", nil, "heuristics in column order (default from config)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	cmd.Flags().StringVar(&summaryFile, "summary", "", "write per-heuristic summary CSV")
	return cmd
}
