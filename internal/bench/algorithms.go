package bench

import (
	"fmt"
	"math/rand"

	"workSchedule/internal/config"
	"workSchedule/internal/ega"
	"workSchedule/internal/exact"
	"workSchedule/internal/opt"
	"workSchedule/internal/schedule"
	"workSchedule/internal/sfla"
)

// Algorithm - именованная фабрика солвера. Каждый запуск получает свой сид.
type Algorithm struct {
	Name    string
	Factory func(seed int64) (opt.Optimizer, error)
}

// Фабрики

func newEGAFactory(cfg ega.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		s, err := ega.New(cfg, randForSeed(seed))
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func newSFLAFactory(cfg sfla.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		s, err := sfla.New(cfg, randForSeed(seed))
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func newExactFactory(cfg exact.Config) func(seed int64) (opt.Optimizer, error) {
	return func(int64) (opt.Optimizer, error) {
		s, err := exact.New(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// NewAlgorithm строит фабрику по имени: exact, ega или sfla.
func NewAlgorithm(name string, exp config.Experiment) (Algorithm, error) {
	switch name {
	case "exact":
		return Algorithm{Name: name, Factory: newExactFactory(exp.Exact)}, nil
	case config.AlgoEGA:
		return Algorithm{Name: name, Factory: newEGAFactory(exp.EGA)}, nil
	case config.AlgoSFLA:
		return Algorithm{Name: name, Factory: newSFLAFactory(exp.SFLA)}, nil
	default:
		return Algorithm{}, fmt.Errorf("%w: неизвестный алгоритм %q", schedule.ErrInvalidConfig, name)
	}
}

// Heuristics возвращает фабрики эвристик из bench.algorithms в заданном порядке.
func Heuristics(exp config.Experiment) ([]Algorithm, error) {
	algos := make([]Algorithm, 0, len(exp.Bench.Algorithms))
	for _, name := range exp.Bench.Algorithms {
		a, err := NewAlgorithm(name, exp)
		if err != nil {
			return nil, err
		}
		algos = append(algos, a)
	}
	return algos, nil
}

func randForSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
