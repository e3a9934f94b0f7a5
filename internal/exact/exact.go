// Package exact - точное решение задачи полным перебором перестановок.
// Используется как эталон для сравнения эвристик на малых задачах.
package exact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workSchedule/internal/opt"
	"workSchedule/internal/schedule"
)

// ErrTooManyJobs - задача слишком велика для полного перебора.
var ErrTooManyJobs = errors.New("too many jobs for exhaustive search")

// Проверка отмены через context выполняется раз в ctxCheckEvery полных перестановок.
const ctxCheckEvery = 4096

type Solver struct {
	Cfg Config
}

func New(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg}, nil
}

// search хранит состояние рекурсивного перебора.
type search struct {
	ctx       context.Context
	eval      *schedule.Evaluator
	prefix    []int
	used      []bool
	best      []int
	bestScore int
	leaves    int
	err       error
}

// Solve перебирает все перестановки в порядке возрастания номеров работ.
// Из равных по качеству решений остаётся найденное первым.
func (s *Solver) Solve(ctx context.Context, p *schedule.Problem) (opt.Result, error) {
	start := time.Now()

	if err := p.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	n := p.N()
	if s.Cfg.MaxJobs > 0 && n > s.Cfg.MaxJobs {
		return opt.Result{}, fmt.Errorf("%w: %w: %d jobs (limit %d)",
			schedule.ErrInvalidConfig, ErrTooManyJobs, n, s.Cfg.MaxJobs)
	}

	eval, err := schedule.NewEvaluator(p)
	if err != nil {
		return opt.Result{}, err
	}

	st := &search{
		ctx:       ctx,
		eval:      eval,
		prefix:    make([]int, 0, n),
		used:      make([]bool, n),
		best:      make([]int, n),
		bestScore: schedule.Worst,
	}
	st.extend()

	meta := map[string]any{"feasible": st.bestScore != schedule.Worst}
	if st.err != nil {
		meta["stopped"] = opt.StoppedContext
	}
	res := opt.NewResult(st.best, st.bestScore, eval.Evaluations(), st.leaves, start, meta)
	return res, st.err
}

func (st *search) extend() {
	if st.err != nil {
		return
	}
	n := len(st.used)
	if len(st.prefix) == n {
		st.visit()
		return
	}
	for job := 0; job < n; job++ {
		if st.used[job] {
			continue
		}
		st.used[job] = true
		st.prefix = append(st.prefix, job)
		st.extend()
		st.prefix = st.prefix[:len(st.prefix)-1]
		st.used[job] = false
		if st.err != nil {
			return
		}
	}
}

func (st *search) visit() {
	// Первая полная перестановка становится начальным кандидатом
	// даже если она недопустима.
	if st.leaves == 0 {
		copy(st.best, st.prefix)
	}
	st.leaves++
	if score := st.eval.Fitness(st.prefix); schedule.BetterScore(score, st.bestScore, false) {
		st.bestScore = score
		copy(st.best, st.prefix)
	}
	if st.leaves%ctxCheckEvery == 0 {
		st.err = st.ctx.Err()
	}
}
