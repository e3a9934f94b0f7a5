package sfla

import (
	"fmt"

	"workSchedule/internal/population"
	"workSchedule/internal/schedule"
)

type Config struct {
	// Memeplexes - количество мемплексов
	Memeplexes int `toml:"memeplexes" yaml:"memeplexes"`
	// MemeplexSize - число особей в мемплексе
	MemeplexSize int `toml:"memeplex_size" yaml:"memeplex_size"`
	// MemeplexCycles - циклы алгоритма внутри мемплекса
	MemeplexCycles int `toml:"memeplex_cycles" yaml:"memeplex_cycles"`
	// PopulationCycles - циклы алгоритма для популяции в целом
	PopulationCycles int `toml:"population_cycles" yaml:"population_cycles"`
	// InitAttempts - бюджет попыток при генерации начальной популяции
	InitAttempts int `toml:"init_attempts" yaml:"init_attempts"`
}

func (c Config) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"Memeplexes", c.Memeplexes},
		{"MemeplexSize", c.MemeplexSize},
		{"MemeplexCycles", c.MemeplexCycles},
		{"PopulationCycles", c.PopulationCycles},
		{"InitAttempts", c.InitAttempts},
	}
	for _, ch := range checks {
		if ch.value <= 0 {
			return fmt.Errorf(
				"%w: %s должно быть > 0 (получено %d)",
				schedule.ErrInvalidConfig, ch.name, ch.value,
			)
		}
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		Memeplexes:       2,
		MemeplexSize:     4,
		MemeplexCycles:   16,
		PopulationCycles: 2,
		InitAttempts:     population.DefaultMaxAttempts,
	}
}
