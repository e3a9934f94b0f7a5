package ega

import (
	"fmt"

	"workSchedule/internal/population"
	"workSchedule/internal/schedule"
)

// Тип оператора скрещивания
type Crossover string

const (
	CrossoverPMX Crossover = "pmx"
	CrossoverOX  Crossover = "ox"
)

type Config struct {
	Population  int `toml:"population" yaml:"population"`
	Generations int `toml:"generations" yaml:"generations"`
	// HammingThreshold - максимальное число совпадающих позиций у родительской пары.
	HammingThreshold int       `toml:"hamming_threshold" yaml:"hamming_threshold"`
	MutationRate     float64   `toml:"mutation_rate" yaml:"mutation_rate"`
	Crossover        Crossover `toml:"crossover" yaml:"crossover"`
	// InitAttempts - бюджет попыток при генерации начальной популяции.
	InitAttempts int `toml:"init_attempts" yaml:"init_attempts"`
}

func (c Config) Validate() error {
	if c.Population <= 0 {
		return fmt.Errorf(
			"%w: размер популяции должен быть > 0 (получено %d)",
			schedule.ErrInvalidConfig, c.Population,
		)
	}
	if c.Generations <= 0 {
		return fmt.Errorf(
			"%w: количество поколений должно быть > 0 (получено %d)",
			schedule.ErrInvalidConfig, c.Generations,
		)
	}
	if c.HammingThreshold <= 2 {
		return fmt.Errorf(
			"%w: хеммингово расстояние должно быть > 2 (получено %d)",
			schedule.ErrInvalidConfig, c.HammingThreshold,
		)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf(
			"%w: вероятность мутации должна быть в диапазоне [0,1] (получено %f)",
			schedule.ErrInvalidConfig, c.MutationRate,
		)
	}
	switch c.Crossover {
	case CrossoverPMX, CrossoverOX:
		// ok
	default:
		return fmt.Errorf(
			"%w: неизвестный тип скрещивания %q",
			schedule.ErrInvalidConfig, c.Crossover,
		)
	}
	if c.InitAttempts <= 0 {
		return fmt.Errorf(
			"%w: число попыток генерации популяции должно быть > 0 (получено %d)",
			schedule.ErrInvalidConfig, c.InitAttempts,
		)
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		Population:       16,
		Generations:      20,
		HammingThreshold: 10,
		MutationRate:     0.1,
		Crossover:        CrossoverPMX,
		InitAttempts:     population.DefaultMaxAttempts,
	}
}
