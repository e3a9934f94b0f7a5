// Package sfla - тасующий алгоритм прыгающих лягушек (shuffled frog-leaping).
package sfla

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"workSchedule/internal/opt"
	"workSchedule/internal/population"
	"workSchedule/internal/schedule"
)

// Solver - структура реализации алгоритма прыгающих лягушек
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый SFLA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: генератор случайных чисел не инициализирован (nil)", schedule.ErrInvalidConfig)
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Solve - реализация эвристики.
func (s *Solver) Solve(ctx context.Context, p *schedule.Problem) (opt.Result, error) {
	start := time.Now()

	if err := p.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("%w: генератор случайных чисел не инициализирован (nil)", schedule.ErrInvalidConfig)
	}

	eval, err := schedule.NewEvaluator(p)
	if err != nil {
		return opt.Result{}, err
	}

	k, size := s.Cfg.Memeplexes, s.Cfg.MemeplexSize

	pop, err := population.Generate(ctx, eval, s.Rng, k*size, s.Cfg.InitAttempts)
	if err != nil {
		return opt.Result{}, err
	}

	// Глобально лучшая особь
	var best []int
	bestScore := schedule.Worst

	memeplexes := make([][][]int, k)
	for i := range memeplexes {
		memeplexes[i] = make([][]int, size)
	}
	prev := make([]int, p.N())
	leaps := 0

	stopped := func() (opt.Result, error) {
		res := opt.NewResult(best, bestScore, eval.Evaluations(), leaps, start,
			map[string]any{"stopped": opt.StoppedContext})
		return res, ctx.Err()
	}

	for cycle := 0; cycle < s.Cfg.PopulationCycles; cycle++ {
		// Сортировка по критерию оптимальности, сохранение лучшей особи
		population.SortByFitness(eval, pop)
		if f := eval.Fitness(pop[0]); best == nil || schedule.BetterScore(f, bestScore, false) {
			best = slices.Clone(pop[0])
			bestScore = f
		}
		if ctx.Err() != nil {
			return stopped()
		}

		// Разбиение на мемплексы с чередованием по отсортированной популяции
		for i := 0; i < k; i++ {
			for j := 0; j < size; j++ {
				memeplexes[i][j] = pop[j*k+i]
			}
		}

		for mc := 0; mc < s.Cfg.MemeplexCycles; mc++ {
			if ctx.Err() != nil {
				s.merge(pop, memeplexes)
				return stopped()
			}
			for _, m := range memeplexes {
				s.leap(eval, m, best, &bestScore, prev)
				leaps++
			}
		}

		// Возврат мемплексов в популяцию
		s.merge(pop, memeplexes)
	}

	return opt.NewResult(best, bestScore, eval.Evaluations(), leaps, start, map[string]any{
		"memeplexes":        k,
		"memeplex_size":     size,
		"memeplex_cycles":   s.Cfg.MemeplexCycles,
		"population_cycles": s.Cfg.PopulationCycles,
	}), nil
}

// leap перемещает худшую лягушку мемплекса m. Новая глобально лучшая
// особь копируется в best.
func (s *Solver) leap(eval *schedule.Evaluator, m [][]int, best []int, bestScore *int, prev []int) {
	last := len(m) - 1
	memeBestScore := eval.Fitness(m[0])

	frog := m[last]
	copy(prev, frog)
	prevScore := eval.Fitness(prev)

	// Переместить лягушку в сторону лучшей лягушки в мемплексе
	moveTowards(frog, m[0], s.Rng)
	score := eval.Fitness(frog)

	if !schedule.BetterScore(score, prevScore, false) {
		// ...в сторону глобально лучшей лягушки
		moveTowards(frog, best, s.Rng)
		score = eval.Fitness(frog)

		if !schedule.BetterScore(score, prevScore, false) {
			// ...в случайное место на поле
			frog = population.RandomIndividual(len(frog), s.Rng)
			m[last] = frog
			score = eval.Fitness(frog)
		}
	}

	// Лучшая в мемплексе проверяется первой: глобально лучшая не хуже неё
	if schedule.BetterScore(score, prevScore, false) &&
		schedule.BetterScore(score, memeBestScore, false) &&
		schedule.BetterScore(score, *bestScore, false) {
		copy(best, frog)
		*bestScore = score
	}

	population.SortByFitness(eval, m)
}

// merge возвращает особей мемплексов на их места в популяции.
func (s *Solver) merge(pop [][]int, memeplexes [][][]int) {
	k := len(memeplexes)
	for i, m := range memeplexes {
		for j, frog := range m {
			pop[j*k+i] = frog
		}
	}
}
