// Package population содержит операции над популяцией расписаний,
// общие для эволюционно-генетического алгоритма и алгоритма прыгающих лягушек.
package population

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sort"

	"workSchedule/internal/schedule"
)

// ErrNoFeasiblePopulation - за отведённое число попыток не набрано
// нужное количество допустимых особей.
var ErrNoFeasiblePopulation = errors.New("no feasible population found")

// DefaultMaxAttempts - бюджет попыток генерации по умолчанию для солверов.
const DefaultMaxAttempts = 1_000_000

// Проверка отмены через context выполняется раз в ctxCheckEvery попыток.
const ctxCheckEvery = 1024

// RandomIndividual создаёт случайную перестановку 0..n-1 (Фишер–Йетс).
func RandomIndividual(n int, rng *rand.Rand) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	Shuffle(p, rng)
	return p
}

// Shuffle выполняет случайную перестановку элементов.
func Shuffle(p []int, rng *rand.Rand) {
	for i := len(p) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
}

// Generate набирает quantity допустимых особей, отбрасывая недопустимые.
// Не более maxAttempts случайных перестановок; при исчерпании бюджета
// возвращается ошибка ErrNoFeasiblePopulation.
func Generate(ctx context.Context, eval *schedule.Evaluator, rng *rand.Rand, quantity, maxAttempts int) ([][]int, error) {
	if eval == nil {
		return nil, fmt.Errorf("%w: evaluator is nil", schedule.ErrInvalidConfig)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: генератор случайных чисел не инициализирован (nil)", schedule.ErrInvalidConfig)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: размер популяции должен быть > 0 (получено %d)", schedule.ErrInvalidConfig, quantity)
	}
	if maxAttempts <= 0 {
		return nil, fmt.Errorf("%w: число попыток должно быть > 0 (получено %d)", schedule.ErrInvalidConfig, maxAttempts)
	}

	n := eval.Problem().N()
	pop := make([][]int, 0, quantity)
	for attempt := 0; len(pop) < quantity; attempt++ {
		if attempt >= maxAttempts {
			return nil, fmt.Errorf("%w: %d of %d individuals after %d attempts",
				ErrNoFeasiblePopulation, len(pop), quantity, maxAttempts)
		}
		if attempt%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		cand := RandomIndividual(n, rng)
		if eval.Validate(cand) {
			pop = append(pop, cand)
		}
	}
	return pop, nil
}

// SortByFitness упорядочивает популяцию по возрастанию целевой функции
// (лучшие первыми). Порядок особей с равным значением сохраняется.
func SortByFitness(eval *schedule.Evaluator, pop [][]int) {
	scores := make([]int, len(pop))
	idxs := make([]int, len(pop))
	for i, ind := range pop {
		scores[i] = eval.Fitness(ind)
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(i, j int) bool {
		return schedule.BetterScore(scores[idxs[i]], scores[idxs[j]], false)
	})
	sorted := make([][]int, len(pop))
	for i, src := range idxs {
		sorted[i] = pop[src]
	}
	copy(pop, sorted)
}

// Best возвращает копию лучшей особи (первую при равенстве) и её значение.
func Best(eval *schedule.Evaluator, pop [][]int) ([]int, int) {
	if len(pop) == 0 {
		return nil, schedule.Worst
	}
	best, bestScore := 0, eval.Fitness(pop[0])
	for i := 1; i < len(pop); i++ {
		if s := eval.Fitness(pop[i]); schedule.BetterScore(s, bestScore, false) {
			best, bestScore = i, s
		}
	}
	return slices.Clone(pop[best]), bestScore
}
