// Package ega - эволюционно-генетический алгоритм для задачи расписаний на одном станке.
package ega

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

// Solver - реализация эволюционно-генетического алгоритма.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый ЭГА-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

	// Проверка корректности входных данных и конфигурации
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

	n := p.N()
	popSize := s.Cfg.Population

	// 0. Начальная популяция из допустимых особей
	pop, err := population.Generate(ctx, eval, s.Rng, popSize, s.Cfg.InitAttempts)
	if err != nil {
		return opt.Result{}, err
	}

	// Лучшая найденная особь за весь прогон: рулетка не сохраняет элиту
	best, bestScore := population.Best(eval, pop)

	// Число родительских пар за поколение; каждая пара даёт двух потомков
	pairs := max(1, popSize/2)

	// Массивы для OX: mark и stamp отмечают уже включённые работы
	mark := make([]int, n)
	stamp := 0

	// Досрочная остановка возвращает лучшую найденную особь
	stopped := func(gen int, reason string) opt.Result {
		return opt.NewResult(best, bestScore, eval.Evaluations(), gen, start, map[string]any{"stopped": reason})
	}

	for gen := 0; gen < s.Cfg.Generations; gen++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return stopped(gen, opt.StoppedContext), err
		}

		// 1. Воспроизводство
		children := make([][]int, 0, 2*pairs)
		for k := 0; k < pairs; k++ {
			p1, p2, ok := selectParents(pop, s.Cfg.HammingThreshold, s.Rng)
			if !ok {
				// Подходящей пары нет: популяция выродилась
				return stopped(gen, opt.StoppedStagnation), nil
			}
			for _, parents := range [2][2][]int{{p1, p2}, {p2, p1}} {
				child := make([]int, n)
				switch s.Cfg.Crossover {
				case CrossoverOX:
					orderCrossoverOX(parents[0], parents[1], child, mark, &stamp)
				default:
					pmxCrossover(parents[0], parents[1], child)
				}
				children = append(children, child)
			}
		}

		// 2. Мутация: генотип строится заново
		for _, child := range children {
			if s.Rng.Float64() < s.Cfg.MutationRate {
				mutateReset(child, s.Rng)
			}
		}

		// 3. Отбрасываем недопустимых потомков
		combined := pop
		for _, child := range children {
			if eval.Validate(child) {
				combined = append(combined, child)
			}
		}

		// 4. Отбор рулеткой из объединения предков и потомков
		weights := make([]float64, len(combined))
		for i, ind := range combined {
			f := eval.Fitness(ind)
			weights[i] = rouletteWeight(f)
			if schedule.BetterScore(f, bestScore, false) {
				best, bestScore = slices.Clone(ind), f
			}
		}
		next := make([][]int, popSize)
		for i, idx := range rouletteSelect(weights, popSize, s.Rng) {
			next[i] = combined[idx]
		}
		pop = next
	}

	// После G поколений результат - лучшая особь итоговой популяции
	population.SortByFitness(eval, pop)
	return opt.NewResult(pop[0], eval.Fitness(pop[0]), eval.Evaluations(), s.Cfg.Generations, start, map[string]any{
		"population":        s.Cfg.Population,
		"generations":       s.Cfg.Generations,
		"hamming_threshold": s.Cfg.HammingThreshold,
		"crossover":         string(s.Cfg.Crossover),
	}), nil
}
