// Package bench - пакетный прогон: генерация задач с эталонным решением перебором
// и сравнение эвристик с эталоном.
package bench

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
	"github.com/sourcegraph/conc/stream"

	"workSchedule/internal/exact"
	"workSchedule/internal/metrics"
	"workSchedule/internal/opt"
	"workSchedule/internal/population"
	"workSchedule/internal/schedule"
)

// Исходы запуска для метрики solver_runs_total
const (
	OutcomeOK         = "ok"
	OutcomeStagnation = "stagnation"
	OutcomeTimeout    = "timeout"
	OutcomeInfeasible = "infeasible"
	OutcomeError      = "error"
)

type GenerateOptions struct {
	Count int
	Jobs  int
	// Seed - базовый сид; задача с индексом i строится генератором с сидом Seed+i
	Seed    int64
	Exact   exact.Config
	Workers int // 0 = runtime.GOMAXPROCS(0)
	Logger  *log.Logger
}

type GenerateReport struct {
	BatchID string
	Written int
	// Skipped - задачи, у которых перебор не нашёл допустимого расписания
	Skipped int
}

// Generate строит Count случайных задач, решает каждую перебором и записывает
// задачи с допустимым оптимумом в w в порядке индексов.
func Generate(ctx context.Context, w io.Writer, o GenerateOptions) (GenerateReport, error) {
	rep := GenerateReport{BatchID: uuid.NewString()}
	if o.Count <= 0 {
		return rep, fmt.Errorf("%w: количество задач должно быть > 0 (получено %d)", schedule.ErrInvalidConfig, o.Count)
	}
	if err := o.Exact.Validate(); err != nil {
		return rep, err
	}
	logger := withDefaults(o.Logger).With("batch", rep.BatchID)
	metrics.Register()

	records := make([]*schedule.Record, o.Count)

	p := pool.New().WithMaxGoroutines(workers(o.Workers)).WithContext(ctx).WithCancelOnError().WithFirstError()
	for i := 0; i < o.Count; i++ {
		i := i // per-iteration copy (go 1.21 loop semantics)
		p.Go(func(ctx context.Context) error {
			prob, err := schedule.RandomProblem(o.Jobs, randForSeed(o.Seed+int64(i)))
			if err != nil {
				return err
			}
			solver, err := exact.New(o.Exact)
			if err != nil {
				return err
			}
			res, err := solver.Solve(ctx, prob)
			observe("exact", res, outcomeOf(ctx, res, err))
			if err != nil {
				return fmt.Errorf("instance %d: %w", i, err)
			}
			if res.Fitness == schedule.Worst {
				logger.Debug("skipped infeasible instance", "index", i)
				return nil
			}
			records[i] = &schedule.Record{Problem: prob, Best: res.Fitness}
			logger.Debug("solved instance", "index", i, "fitness", res.Fitness, "elapsed", res.Duration)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return rep, err
	}

	for _, rec := range records {
		if rec == nil {
			rep.Skipped++
			continue
		}
		if err := schedule.WriteRecord(w, *rec); err != nil {
			return rep, err
		}
		rep.Written++
	}
	logger.Info("generated instances", "written", rep.Written, "skipped", rep.Skipped)
	return rep, nil
}

type ReplayOptions struct {
	Algorithms []Algorithm
	// Seed - базовый сид; все эвристики на задаче с индексом i получают сид Seed+i
	Seed          int64
	Workers       int           // 0 = runtime.GOMAXPROCS(0)
	PerRunTimeout time.Duration // 0 = no timeout
	Logger        *log.Logger
}

// Summary - сводка по одной эвристике за весь прогон.
type Summary struct {
	Algo string
	Runs int

	DeviationBest float64
	DeviationMean float64
	DeviationStd  float64
	// Failed - запуски без допустимого решения (отклонение +Inf)
	Failed int

	FitnessBest int
	FitnessMean float64
	FitnessStd  float64

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64
}

type ReplayReport struct {
	BatchID   string
	Instances int
	Summaries []Summary
}

type runOutcome struct {
	fitness   int
	deviation float64
	timeMs    float64
}

// Replay читает записи из r, запускает каждую эвристику на каждой задаче и пишет в w
// по строке отклонений на задачу в порядке входного файла.
func Replay(ctx context.Context, r io.Reader, w io.Writer, o ReplayOptions) (ReplayReport, error) {
	rep := ReplayReport{BatchID: uuid.NewString()}
	if len(o.Algorithms) == 0 {
		return rep, fmt.Errorf("%w: не задано ни одной эвристики", schedule.ErrInvalidConfig)
	}
	if o.PerRunTimeout < 0 {
		return rep, fmt.Errorf("%w: таймаут не может быть отрицательным", schedule.ErrInvalidConfig)
	}
	logger := withDefaults(o.Logger).With("batch", rep.BatchID)
	metrics.Register()

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	collected := make([][]runOutcome, len(o.Algorithms))
	var firstErr error // доступ только из колбэков stream и после Wait

	s := stream.New().WithMaxGoroutines(workers(o.Workers))
	rr := schedule.NewRecordReader(r)
	var readErr error
	for i := 0; ctx.Err() == nil; i++ {
		rec, err := rr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			readErr = err
			break
		}
		i := i // per-iteration copy (go 1.21 loop semantics)
		s.Go(func() stream.Callback {
			outs, err := replayOne(ctx, i, rec, o, logger)
			return func() {
				if firstErr != nil {
					return
				}
				if err == nil {
					_, err = fmt.Fprintln(w, FormatDeviations(lo.Map(outs, func(ro runOutcome, _ int) float64 { return ro.deviation })))
				}
				if err != nil {
					firstErr = err
					cancel(err)
					return
				}
				for j, ro := range outs {
					collected[j] = append(collected[j], ro)
				}
				rep.Instances++
			}
		})
	}
	s.Wait()

	switch {
	case readErr != nil:
		return rep, readErr
	case firstErr != nil:
		return rep, firstErr
	case context.Cause(ctx) != nil:
		return rep, context.Cause(ctx)
	}

	rep.Summaries = make([]Summary, len(o.Algorithms))
	for j, a := range o.Algorithms {
		rep.Summaries[j] = summarize(a.Name, collected[j])
	}
	logger.Info("replayed instances", "instances", rep.Instances)
	return rep, nil
}

func replayOne(ctx context.Context, idx int, rec schedule.Record, o ReplayOptions, logger *log.Logger) ([]runOutcome, error) {
	outs := make([]runOutcome, len(o.Algorithms))
	seed := o.Seed + int64(idx)

	for j, a := range o.Algorithms {
		op, err := a.Factory(seed)
		if err != nil {
			return nil, fmt.Errorf("instance %d: %s: %w", idx, a.Name, err)
		}

		runCtx := ctx
		cancel := func() {}
		if o.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, o.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, rec.Problem)
		dur := time.Since(start)
		cancel()

		outcome := outcomeOf(runCtx, res, err)
		observe(a.Name, res, outcome)

		fitness := res.Fitness
		switch {
		case err == nil:
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case errors.Is(err, context.DeadlineExceeded):
			logger.Warn("run timed out", "index", idx, "algo", a.Name, "timeout", o.PerRunTimeout)
			if res.Schedule == nil {
				fitness = schedule.Worst
			}
		case errors.Is(err, population.ErrNoFeasiblePopulation):
			logger.Warn("no feasible population", "index", idx, "algo", a.Name, "err", err)
			fitness = schedule.Worst
		default:
			return nil, fmt.Errorf("instance %d: %s: %w", idx, a.Name, err)
		}

		dev := Deviation(rec.Best, fitness)
		if !math.IsInf(dev, 0) {
			metrics.Deviation.WithLabelValues(a.Name).Observe(dev)
		}
		outs[j] = runOutcome{
			fitness:   fitness,
			deviation: dev,
			timeMs:    float64(dur.Microseconds()) / 1000.0,
		}
		logger.Debug("run finished", "index", idx, "algo", a.Name, "fitness", fitness, "best", rec.Best, "outcome", outcome)
	}
	return outs, nil
}

func summarize(name string, outs []runOutcome) Summary {
	dStats := CalcFloatStats(lo.Map(outs, func(o runOutcome, _ int) float64 { return o.deviation }))
	fStats := CalcIntStats(lo.Map(outs, func(o runOutcome, _ int) int { return o.fitness }))
	tStats := CalcFloatStats(lo.Map(outs, func(o runOutcome, _ int) float64 { return o.timeMs }))

	return Summary{
		Algo: name,
		Runs: len(outs),

		DeviationBest: dStats.Best,
		DeviationMean: dStats.Mean,
		DeviationStd:  dStats.Std,
		Failed:        dStats.Missing,

		FitnessBest: fStats.Best,
		FitnessMean: fStats.Mean,
		FitnessStd:  fStats.Std,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,
	}
}

func outcomeOf(ctx context.Context, res opt.Result, err error) string {
	switch {
	case err == nil && res.Meta["stopped"] == opt.StoppedStagnation:
		return OutcomeStagnation
	case err == nil:
		return OutcomeOK
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil:
		return OutcomeTimeout
	case errors.Is(err, population.ErrNoFeasiblePopulation):
		return OutcomeInfeasible
	default:
		return OutcomeError
	}
}

func observe(algo string, res opt.Result, outcome string) {
	metrics.SolverRuns.WithLabelValues(algo, outcome).Inc()
	metrics.SolverEvaluations.WithLabelValues(algo).Add(float64(res.Evaluations))
	metrics.SolverDuration.WithLabelValues(algo).Observe(res.Duration.Seconds())
}

func workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

func withDefaults(l *log.Logger) *log.Logger {
	if l == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return l
}

// WriteCSV сохраняет сводку прогона.
func WriteCSV(path string, summaries []Summary) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{
		"algo", "runs", "failed",
		"deviation_best", "deviation_mean", "deviation_std",
		"fitness_best", "fitness_mean", "fitness_std",
		"time_best_ms", "time_mean_ms", "time_std_ms",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range summaries {
		row := []string{
			s.Algo,
			itoa(s.Runs),
			itoa(s.Failed),

			ftoa(s.DeviationBest),
			ftoa(s.DeviationMean),
			ftoa(s.DeviationStd),

			itoa(s.FitnessBest),
			ftoa(s.FitnessMean),
			ftoa(s.FitnessStd),

			ftoa(s.TimeBestMs),
			ftoa(s.TimeMeanMs),
			ftoa(s.TimeStdMs),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
