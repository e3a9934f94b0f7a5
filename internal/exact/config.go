package exact

import (
	"fmt"

	"workSchedule/internal/schedule"
)

type Config struct {
	// MaxJobs ограничивает размер задачи; 0 - без ограничения.
	// Полный перебор O(n!) практически неприменим уже при 11–12 работах.
	MaxJobs int `toml:"max_jobs" yaml:"max_jobs"`
}

func (c Config) Validate() error {
	if c.MaxJobs < 0 {
		return fmt.Errorf(
			"%w: MaxJobs должно быть >= 0 (получено %d)",
			schedule.ErrInvalidConfig, c.MaxJobs,
		)
	}
	return nil
}

func DefaultConfig() Config {
	return Config{MaxJobs: 12}
}
