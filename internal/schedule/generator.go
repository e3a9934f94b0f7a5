package schedule

import (
	"fmt"
	"math/rand"
	"slices"
)

// RandomProblem генерирует задачу равномерным распределением:
// время выполнения 1..5, поступление 0..ceil(n/2)-1,
// целевое время arrival+1..arrival+n-1, штраф 1..3.
func RandomProblem(n int, rng *rand.Rand) (*Problem, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: генератор случайных чисел не инициализирован (nil)", ErrInvalidConfig)
	}
	if n <= 1 {
		return nil, fmt.Errorf("%w: jobs must be > 1 (got %d)", ErrInvalidConfig, n)
	}

	required := make([]int, n)
	arrival := make([]int, n)
	goal := make([]int, n)
	penalty := make([]int, n)

	arrivalSpan := n/2 + n%2
	for i := 0; i < n; i++ {
		required[i] = 1 + rng.Intn(5)
		arrival[i] = rng.Intn(arrivalSpan)
		goal[i] = arrival[i] + 1 + rng.Intn(n-1)
		penalty[i] = 1 + rng.Intn(3)
	}

	// Хотя бы одна работа должна поступать в момент 0
	if !slices.Contains(arrival, 0) {
		arrival[rng.Intn(n)] = 0
	}

	return NewProblem(required, arrival, goal, penalty)
}
