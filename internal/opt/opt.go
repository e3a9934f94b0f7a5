package opt

import (
	"context"
	"slices"
	"time"

	"workSchedule/internal/schedule"
)

// Optimizer - общий контракт солверов: solve(problem) -> schedule.
type Optimizer interface {
	Solve(ctx context.Context, p *schedule.Problem) (Result, error)
}

type Result struct {
	Schedule    []int
	Fitness     int
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}

// NewResult копирует лучшее расписание, чтобы результат не разделял память с солвером.
func NewResult(best []int, fitness, evals, iters int, start time.Time, meta map[string]any) Result {
	return Result{
		Schedule:    slices.Clone(best),
		Fitness:     fitness,
		Evaluations: evals,
		Iterations:  iters,
		Duration:    time.Since(start),
		Meta:        meta,
	}
}

// Причины досрочной остановки, записываемые в Meta["stopped"].
const (
	StoppedContext    = "context"
	StoppedStagnation = "stagnation"
)
